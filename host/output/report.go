package output

import (
	"fmt"
	"strconv"

	"holdboard/protocol"
)

// PlacementRow is one resolved placement
type PlacementRow struct {
	Position uint16 `json:"position" yaml:"position"`
	Color    string `json:"color" yaml:"color"`
	Byte     byte   `json:"byte" yaml:"byte"`
}

// PacketRow summarizes one logical packet
type PacketRow struct {
	Index   int    `json:"index" yaml:"index"`
	Role    string `json:"role" yaml:"role"`
	Length  int    `json:"length" yaml:"length"`
	Triples int    `json:"triples" yaml:"triples"`
}

// EncodeReport describes everything sent for one request
type EncodeReport struct {
	Frames     string         `json:"frames" yaml:"frames"`
	Layout     string         `json:"layout" yaml:"layout"`
	Placements []PlacementRow `json:"placements" yaml:"placements"`
	Packets    []PacketRow    `json:"packets" yaml:"packets"`
	Bytes      int            `json:"bytes" yaml:"bytes"`
	Units      []string       `json:"units" yaml:"units"`
}

// NewEncodeReport runs the encoder over placements and records each stage
func NewEncodeReport(frames, layout string, placements []protocol.Placement) (*EncodeReport, error) {
	r := &EncodeReport{Frames: frames, Layout: layout}

	for _, p := range placements {
		r.Placements = append(r.Placements, PlacementRow{
			Position: p.Position,
			Color:    p.Color.Hex(),
			Byte:     p.Color.Byte(),
		})
	}
	for i, p := range protocol.Split(placements) {
		r.Packets = append(r.Packets, PacketRow{
			Index:   i,
			Role:    p.Role.String(),
			Length:  p.Len(),
			Triples: len(p.Payload) / protocol.TripleSize,
		})
	}

	units, err := protocol.Units(placements)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		r.Bytes += len(u)
		r.Units = append(r.Units, Hex(u))
	}
	return r, nil
}

func (r *EncodeReport) Tables() []Table {
	placements := Table{Title: fmt.Sprintf("Placements (%d, layout %s)", len(r.Placements), r.Layout), Header: []string{"POSITION", "COLOR", "BYTE"}}
	for _, p := range r.Placements {
		placements.Rows = append(placements.Rows, []string{itoa(int(p.Position)), p.Color, fmt.Sprintf("0x%02X", p.Byte)})
	}

	packets := Table{Title: fmt.Sprintf("Packets (%d)", len(r.Packets)), Header: []string{"#", "ROLE", "LENGTH", "TRIPLES"}}
	for _, p := range r.Packets {
		packets.Rows = append(packets.Rows, []string{itoa(p.Index), p.Role, itoa(p.Length), itoa(p.Triples)})
	}

	units := Table{Title: fmt.Sprintf("Units (%d, %d bytes)", len(r.Units), r.Bytes), Header: []string{"#", "BYTES"}}
	for i, u := range r.Units {
		units.Rows = append(units.Rows, []string{itoa(i), u})
	}
	return []Table{placements, packets, units}
}

// TripleRow is a placement as decoded on the board side
type TripleRow struct {
	Position uint16 `json:"position" yaml:"position"`
	Byte     byte   `json:"byte" yaml:"byte"`
	Color    string `json:"color" yaml:"color"`
}

// DecodeReport describes the requests recovered from a byte stream
type DecodeReport struct {
	Packets    int           `json:"packets" yaml:"packets"`
	Dropped    int           `json:"dropped" yaml:"dropped"`
	Broken     int           `json:"broken" yaml:"broken"`
	Incomplete bool          `json:"incomplete" yaml:"incomplete"`
	Requests   [][]TripleRow `json:"requests" yaml:"requests"`
}

// NewDecodeReport converts a decoded stream for display
func NewDecodeReport(d *protocol.Decoded) *DecodeReport {
	r := &DecodeReport{
		Packets:    d.Packets,
		Dropped:    d.Dropped,
		Broken:     d.Broken,
		Incomplete: d.Incomplete,
	}
	for _, request := range d.Requests {
		rows := make([]TripleRow, len(request))
		for i, t := range request {
			rows[i] = TripleRow{Position: t.Position, Byte: t.Color, Color: protocol.ColorFromByte(t.Color).Hex()}
		}
		r.Requests = append(r.Requests, rows)
	}
	return r
}

func (r *DecodeReport) Tables() []Table {
	summary := Table{
		Title:  "Stream",
		Header: []string{"PACKETS", "DROPPED", "BROKEN", "INCOMPLETE"},
		Rows:   [][]string{{itoa(r.Packets), itoa(r.Dropped), itoa(r.Broken), strconv.FormatBool(r.Incomplete)}},
	}
	tables := []Table{summary}
	for i, request := range r.Requests {
		t := Table{Title: fmt.Sprintf("Request %d (%d placements)", i, len(request)), Header: []string{"POSITION", "BYTE", "COLOR"}}
		for _, row := range request {
			t.Rows = append(t.Rows, []string{itoa(int(row.Position)), fmt.Sprintf("0x%02X", row.Byte), row.Color})
		}
		tables = append(tables, t)
	}
	return tables
}

// Hex formats bytes as space separated uppercase pairs
func Hex(b []byte) string {
	return fmt.Sprintf("% X", b)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
