/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package state

import (
	. "github.com/frankkopp/FrankyGo/types"
)

// CanCastle reports (king-side, queen-side) availability for side, lazily
// computed and cached once per state.
func (g *GameState) CanCastle(side Color) (kingSide, queenSide bool) {
	if side == White {
		g.whiteCastleOnce.Do(func() {
			g.whiteKingSide, g.whiteQueenSide = g.computeCastle(White, g.white)
		})
		return g.whiteKingSide, g.whiteQueenSide
	}
	g.blackCastleOnce.Do(func() {
		g.blackKingSide, g.blackQueenSide = g.computeCastle(Black, g.black)
	})
	return g.blackKingSide, g.blackQueenSide
}

func (g *GameState) computeCastle(side Color, rights CastlingRights) (kingSide, queenSide bool) {
	if rights.KingMoved {
		return false, false
	}
	kingSide = !rights.KingRookMoved
	queenSide = !rights.QueenRookMoved
	homeRank := Rank1
	if side == Black {
		homeRank = Rank8
	}
	rook := MakePiece(side, Rook)
	kingSide = kingSide && g.board.PieceAt(SquareOf(FileH, homeRank)) == rook
	queenSide = queenSide && g.board.PieceAt(SquareOf(FileA, homeRank)) == rook
	if !kingSide && !queenSide {
		return false, false
	}

	opponentAttacks := g.board.AttackedMask(side.Flip())
	if kingSide && opponentAttacks.Intersects(kingSideAttackCheck[side]) {
		kingSide = false
	}
	if queenSide && opponentAttacks.Intersects(queenSideAttackCheck[side]) {
		queenSide = false
	}
	if !kingSide && !queenSide {
		return false, false
	}

	occupied := g.occupiedMask()
	if kingSide && occupied.Intersects(kingSideMoveCheck[side]) {
		kingSide = false
	}
	if queenSide && occupied.Intersects(queenSideMoveCheck[side]) {
		queenSide = false
	}
	return kingSide, queenSide
}

func (g *GameState) occupiedMask() Bitboard {
	var mask Bitboard
	for sq := SqA1; sq < SqNone; sq++ {
		if !g.board.PieceAt(sq).IsEmpty() {
			mask |= sq.Bb()
		}
	}
	return mask
}

// LegalMoves returns every move available to side_to_move: per-piece
// pseudo-legal moves filtered through the check test, plus castling and
// en-passant moves the board layer cannot produce on its own.
func (g *GameState) LegalMoves() []Move {
	g.legalOnce.Do(func() {
		g.legalMoves = g.computeLegalMoves()
	})
	return g.legalMoves
}

func (g *GameState) computeLegalMoves() []Move {
	side := g.sideToMove
	candidates := g.board.PseudoLegalMoves(side)
	candidates = append(candidates, g.castlingMoves(side)...)
	if ep, ok := g.enPassantMove(side); ok {
		candidates = append(candidates, ep)
	}

	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		after := g.board.Apply(m)
		if !after.IsInCheck(side) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (g *GameState) castlingMoves(side Color) []Move {
	rank := Rank1
	if side == Black {
		rank = Rank8
	}
	kingSq := SquareOf(FileE, rank)
	kingSide, queenSide := g.CanCastle(side)

	var moves []Move
	if kingSide {
		moves = append(moves, NewMove(kingSq, SquareOf(FileG, rank), PtNone))
	}
	if queenSide {
		moves = append(moves, NewMove(kingSq, SquareOf(FileC, rank), PtNone))
	}
	return moves
}

// enPassantMove reports the en-passant capture available to side, if the
// last move was a two-square pawn push landing adjacent to one of side's
// pawns.
func (g *GameState) enPassantMove(side Color) (Move, bool) {
	last := g.lastMove
	if !last.IsValid() {
		return MoveNone, false
	}
	pushedPiece := g.board.PieceAt(last.To())
	if pushedPiece.IsEmpty() || pushedPiece.TypeOf() != Pawn || pushedPiece.ColorOf() == side {
		return MoveNone, false
	}
	fromRank, toRank := last.From().RankOf(), last.To().RankOf()
	if rankDistance(fromRank, toRank) != 2 {
		return MoveNone, false
	}

	captureRank := Rank5
	if side == Black {
		captureRank = Rank4
	}
	if last.To().RankOf() != captureRank {
		return MoveNone, false
	}

	targetFile := last.To().FileOf()
	for _, df := range [2]int{-1, 1} {
		f := int(targetFile) + df
		if f < 0 || f > 7 {
			continue
		}
		from := SquareOf(File(f), captureRank)
		p := g.board.PieceAt(from)
		if p.TypeOf() != Pawn || p.ColorOf() != side {
			continue
		}
		behind := Rank6
		if side == Black {
			behind = Rank3
		}
		to := SquareOf(targetFile, behind)
		return NewMove(from, to, PtNone), true
	}
	return MoveNone, false
}

func rankDistance(a, b Rank) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}
