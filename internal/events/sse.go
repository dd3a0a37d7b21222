package events

import (
	"bufio"
	"io"
	"strings"
)

// Event is one decoded text/event-stream frame.
type Event struct {
	Type string
	ID   string
	Data string
}

// Decoder reads text/event-stream frames from r.
type Decoder struct {
	scanner *bufio.Scanner
}

func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Decoder{scanner: sc}
}

// Next returns the next event that carries data. Comment lines (keep-alives) and
// data-less frames are skipped. A partial frame at end of stream is discarded.
func (d *Decoder) Next() (Event, error) {
	var (
		ev      Event
		data    []string
		hasData bool
	)
	for d.scanner.Scan() {
		line := strings.TrimSuffix(d.scanner.Text(), "\r")

		if line == "" {
			if hasData {
				ev.Data = strings.Join(data, "\n")
				return ev, nil
			}
			ev = Event{}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "data":
			data = append(data, value)
			hasData = true
		case "event":
			ev.Type = value
		case "id":
			ev.ID = value
		}
	}
	if err := d.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}
