package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// SpeedupRow is one thread count of a sweep.
type SpeedupRow struct {
	Threads  int
	SerialMs float64
	ThreadMs float64
	Speedup  float64
}

func (r SpeedupRow) String() string {
	return fmt.Sprintf("threads=%2d serial=%8.3fms threaded=%8.3fms speedup=%5.2f",
		r.Threads, r.SerialMs, r.ThreadMs, r.Speedup)
}

// WriteSpeedupCSV writes rows with a threads,serial_ms,thread_ms,speedup header.
func WriteSpeedupCSV(w io.Writer, rows []SpeedupRow) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"threads", "serial_ms", "thread_ms", "speedup"})
	for _, r := range rows {
		cw.Write([]string{
			strconv.Itoa(r.Threads),
			strconv.FormatFloat(r.SerialMs, 'f', -1, 64),
			strconv.FormatFloat(r.ThreadMs, 'f', -1, 64),
			strconv.FormatFloat(r.Speedup, 'f', -1, 64),
		})
	}
	cw.Flush()
	return cw.Error()
}
