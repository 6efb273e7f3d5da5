package dataset

import (
	"github.com/killallgit/seispick/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"
)

// PickRow represents a pick in Parquet format.
type PickRow struct {
	ID             int64  `parquet:"id"`
	EventID        string `parquet:"event_id,zstd"`
	ChannelID      string `parquet:"channel_id,zstd"`
	TraceStartTime string `parquet:"trace_start_time,zstd"`
	PickSample     *int64 `parquet:"pick_sample,optional"`
	UserID         string `parquet:"user_id,zstd"`
	CreatedTimeUs  int64  `parquet:"created_time_us"`
}

// PickToRow converts a pick log row to a PickRow.
func PickToRow(p *models.Pick) PickRow {
	return PickRow{
		ID:             int64(p.ID),
		EventID:        p.EventID,
		ChannelID:      p.ChannelID,
		TraceStartTime: p.TraceStartTime,
		PickSample:     p.PickSample,
		UserID:         p.UserID,
		CreatedTimeUs:  p.CreatedTime.UnixMicro(),
	}
}

// Codec returns the parquet-go codec for a compression name.
// Unknown names fall back to zstd.
func Codec(name string) compress.Codec {
	switch name {
	case "none", "":
		return &parquet.Uncompressed
	case "snappy":
		return &parquet.Snappy
	case "gzip":
		return &parquet.Gzip
	case "lz4":
		return &parquet.Lz4Raw
	default:
		return &parquet.Zstd
	}
}
