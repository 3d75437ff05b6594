package gst

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/decibelcooper/genieplot"
)

// Columns of a CSV event dump. They carry the gst branch names; the hadron
// arrays hold ';'-separated values and may be omitted together.
var (
	requiredColumns = []string{
		"cc", "nc", "coh",
		"nfpip", "nfpim", "nfpi0", "nfp", "nfn",
		"fspl", "El", "pl", "cthl", "Ev", "Q2", "sumKEf",
	}
	hadronColumns = []string{"pdgf", "pf", "cthf"}
)

// ReadCSV reads an event dump written with one row per event.
func ReadCSV(ctx context.Context, path string) ([]genieplot.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	events, err := DecodeCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

// DecodeCSV reads events from r. The first record is the header.
func DecodeCSV(ctx context.Context, r io.Reader) ([]genieplot.Event, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	withHadrons := true
	for _, name := range hadronColumns {
		if _, ok := col[name]; !ok {
			withHadrons = false
		}
	}

	var events []genieplot.Event
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(events)%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line, _ := reader.FieldPos(0)
		p := fieldParser{record: record, col: col}
		e := genieplot.Event{
			ChargedCurrent: p.parseBool("cc"),
			NeutralCurrent: p.parseBool("nc"),
			Coherent:       p.parseBool("coh"),
			NPiPlus:        p.parseCount("nfpip"),
			NPiMinus:       p.parseCount("nfpim"),
			NPi0:           p.parseCount("nfpi0"),
			NProton:        p.parseCount("nfp"),
			NNeutron:       p.parseCount("nfn"),
			LeptonPDG:      p.parseInt("fspl"),
			LeptonEnergy:   p.parseFloat("El"),
			LeptonMomentum: p.parseFloat("pl"),
			LeptonCosTheta: p.parseFloat("cthl"),
			NeutrinoEnergy: p.parseFloat("Ev"),
			Q2:             p.parseFloat("Q2"),
			SumKE:          p.parseFloat("sumKEf"),
		}
		if withHadrons {
			e.Hadrons = p.hadrons()
		}
		if p.err != nil {
			return nil, fmt.Errorf("line %d: %w", line, p.err)
		}
		events = append(events, e)
	}
	return events, nil
}

// fieldParser converts the fields of one record, keeping the first error.
type fieldParser struct {
	record []string
	col    map[string]int
	err    error
}

func (p *fieldParser) field(name string) string {
	i := p.col[name]
	if i >= len(p.record) {
		return ""
	}
	return strings.TrimSpace(p.record[i])
}

func (p *fieldParser) fail(name string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("column %s: %w", name, err)
	}
}

func (p *fieldParser) parseBool(name string) bool {
	v, err := strconv.ParseBool(p.field(name))
	if err != nil {
		p.fail(name, err)
	}
	return v
}

func (p *fieldParser) parseInt(name string) int {
	v, err := strconv.Atoi(p.field(name))
	if err != nil {
		p.fail(name, err)
	}
	return v
}

func (p *fieldParser) parseCount(name string) int {
	v := p.parseInt(name)
	if v < 0 {
		p.fail(name, fmt.Errorf("negative multiplicity %d", v))
	}
	return v
}

func (p *fieldParser) parseFloat(name string) float64 {
	v, err := strconv.ParseFloat(p.field(name), 64)
	if err != nil {
		p.fail(name, err)
	}
	return v
}

func (p *fieldParser) hadrons() []genieplot.Hadron {
	pdg := splitList(p.field("pdgf"))
	mom := splitList(p.field("pf"))
	cth := splitList(p.field("cthf"))
	if len(pdg) != len(mom) || len(pdg) != len(cth) {
		p.fail("pdgf", fmt.Errorf("hadron lists have lengths %d, %d, %d", len(pdg), len(mom), len(cth)))
		return nil
	}
	if len(pdg) == 0 {
		return nil
	}

	hadrons := make([]genieplot.Hadron, len(pdg))
	for i := range hadrons {
		code, err := strconv.Atoi(pdg[i])
		if err != nil {
			p.fail("pdgf", err)
		}
		pf, err := strconv.ParseFloat(mom[i], 64)
		if err != nil {
			p.fail("pf", err)
		}
		ct, err := strconv.ParseFloat(cth[i], 64)
		if err != nil {
			p.fail("cthf", err)
		}
		hadrons[i] = genieplot.Hadron{PDG: code, Momentum: pf, CosTheta: ct}
	}
	return hadrons
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
