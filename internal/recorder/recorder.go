package recorder

import "DipSnap/internal/model"

// Recorder persists signal and trade history for later analysis.
type Recorder interface {
	RecordSignal(sig *model.Signal) error
	RecordTrade(trade *model.TradeSummary) error
	Close() error
}
