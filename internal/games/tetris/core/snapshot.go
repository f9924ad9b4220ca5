package core

// Snapshot is the telemetry record emitted after state-changing calls.
// Field names match the wire format consumed by the external learner.
type Snapshot struct {
	Contour             []int  `json:"contour"`
	CurrentPiece        string `json:"currentPiece"`
	NormalLinesCleared  int    `json:"normalLinesCleared"`
	GarbageLinesCleared int    `json:"garbageLinesCleared"`
	PiecesPlaced        int    `json:"piecesPlaced"`
	GameOver            bool   `json:"gameOver"`
	Grid                []int  `json:"grid,omitempty"`
}

// Snapshot captures the current board state.
func (b *Board) Snapshot() Snapshot {
	piece := ""
	if r := b.CurrentPieceSymbol(); r != 0 {
		piece = string(r)
	}
	return Snapshot{
		Contour:             b.Contour(),
		CurrentPiece:        piece,
		NormalLinesCleared:  b.normalLines,
		GarbageLinesCleared: b.garbageLines,
		PiecesPlaced:        b.piecesPlaced,
		GameOver:            b.gameOver,
	}
}

// SnapshotWithGrid is Snapshot plus the full GridState.
func (b *Board) SnapshotWithGrid() Snapshot {
	s := b.Snapshot()
	s.Grid = b.GridState()
	return s
}
