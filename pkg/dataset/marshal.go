package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Marshal serializes records back to the delimited text form accepted by
// Parse. The format has no embedded-delimiter escaping, so a field that
// cannot survive the trip — one containing a comma or line break, or one
// fully wrapped in double quotes (Parse would strip them) — fails with
// ErrUnrepresentableField rather than producing text that reparses wrong.
// Such fields can only enter through the XLSX reader; text input can never
// contain them. Whenever Marshal succeeds, reparsing its output yields equal
// records modulo numeric formatting.
func Marshal(records []Record) (string, error) {
	var b strings.Builder
	b.WriteString("Region,Scenario,Variable,Year,Value\n")
	for i, r := range records {
		for _, f := range []string{r.Region, r.Scenario, r.Variable} {
			if err := checkField(i+1, f); err != nil {
				return "", err
			}
		}
		b.WriteString(r.Region)
		b.WriteByte(',')
		b.WriteString(r.Scenario)
		b.WriteByte(',')
		b.WriteString(r.Variable)
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.Year))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(r.Value, 'g', -1, 64))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func checkField(row int, f string) error {
	switch {
	case strings.ContainsAny(f, ",\n\r"):
		return fmt.Errorf("dataset: row %d field %q: %w", row, f, ErrUnrepresentableField)
	case len(f) >= 2 && strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`):
		return fmt.Errorf("dataset: row %d field %q: %w", row, f, ErrUnrepresentableField)
	}
	return nil
}

// Fingerprint identifies a loaded record set by hashing every field with a
// length prefix, so it is total over all records (including ones Marshal
// rejects) and separator collisions are impossible. Parse sorts by year, so
// reloads of the same data hash identically unless equal-year rows were
// reordered at the source.
func Fingerprint(records []Record) uint64 {
	d := xxhash.New()
	var size [8]byte
	field := func(s string) {
		binary.LittleEndian.PutUint64(size[:], uint64(len(s)))
		_, _ = d.Write(size[:])
		_, _ = io.WriteString(d, s)
	}
	for _, r := range records {
		field(r.Region)
		field(r.Scenario)
		field(r.Variable)
		field(strconv.Itoa(r.Year))
		field(strconv.FormatFloat(r.Value, 'g', -1, 64))
	}
	return d.Sum64()
}
