package nonce

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
)

// SignatureParser parses signatures from a source.
type SignatureParser interface {
	ParseSignatures(source string) ([]*Signature, error)
}

// Fields names the fields (JSON) or columns (CSV) holding each value.
// Empty names take the defaults: message, z, r, s and public_key.
//
// Numbers are decimal unless they carry a 0x prefix or hex letters. A
// message with a 0x prefix is hex decoded, otherwise it is taken as is.
// The scheme specific checks happen when the signatures are searched.
type Fields struct {
	Message   string
	Z         string
	R         string
	S         string
	PublicKey string
}

func (f Fields) withDefaults() Fields {
	def := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Fields{
		Message:   def(f.Message, "message"),
		Z:         def(f.Z, "z"),
		R:         def(f.R, "r"),
		S:         def(f.S, "s"),
		PublicKey: def(f.PublicKey, "public_key"),
	}
}

// JSONParser parses a JSON array of signature objects:
//
//	[
//	  {"message": "...", "r": "0x...", "s": "0x..."},
//	  {"z": "0x...", "r": "0x...", "s": "0x...", "public_key": "0x..."}
//	]
type JSONParser struct {
	Fields Fields
}

// ParseSignatures parses signatures from a JSON file.
func (p *JSONParser) ParseSignatures(jsonFile string) ([]*Signature, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()
	return p.Parse(file)
}

// Parse parses signatures from r.
func (p *JSONParser) Parse(r io.Reader) ([]*Signature, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var items []map[string]any
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	f := p.Fields.withDefaults()
	signatures := make([]*Signature, 0, len(items))
	for i, item := range items {
		rec := make(map[string]string, len(item))
		for k, v := range item {
			switch v := v.(type) {
			case string:
				rec[k] = v
			case json.Number:
				rec[k] = v.String()
			default:
				return nil, fmt.Errorf("signature %d: field %q must be a string or a number, got %T", i, k, v)
			}
		}
		sig, err := buildSignature(f, rec)
		if err != nil {
			return nil, fmt.Errorf("signature %d: %w", i, err)
		}
		signatures = append(signatures, sig)
	}
	return signatures, nil
}

// CSVParser parses a CSV file with a header row.
type CSVParser struct {
	Fields Fields
}

// ParseSignatures parses signatures from a CSV file.
func (p *CSVParser) ParseSignatures(csvFile string) ([]*Signature, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return p.Parse(file)
}

// Parse parses signatures from r.
func (p *CSVParser) Parse(r io.Reader) ([]*Signature, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	f := p.Fields.withDefaults()
	var signatures []*Signature
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) && record[i] != "" {
				rec[col] = record[i]
			}
		}
		sig, err := buildSignature(f, rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		signatures = append(signatures, sig)
	}
	return signatures, nil
}

// ParserFor picks the parser by file extension: .csv or JSON otherwise.
func ParserFor(source string) SignatureParser {
	if strings.HasSuffix(strings.ToLower(source), ".csv") {
		return &CSVParser{}
	}
	return &JSONParser{}
}

func buildSignature(f Fields, rec map[string]string) (*Signature, error) {
	sig := &Signature{}
	var err error

	if v, ok := rec[f.Message]; ok {
		if sig.Message, err = parseMessage(v); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.Message, err)
		}
	}
	for _, n := range []struct {
		name string
		dst  **big.Int
	}{{f.Z, &sig.Z}, {f.R, &sig.R}, {f.S, &sig.S}} {
		v, ok := rec[n.name]
		if !ok {
			continue
		}
		if *n.dst, err = ParseBigInt(v); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", n.name, err)
		}
	}
	if v, ok := rec[f.PublicKey]; ok {
		if sig.PublicKey, err = DecodeHex(v); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.PublicKey, err)
		}
	}
	if sig.R == nil || sig.S == nil {
		return nil, fmt.Errorf("%w: missing %s or %s", ErrInvalidSignature, f.R, f.S)
	}
	return sig, nil
}

func parseMessage(v string) ([]byte, error) {
	if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
		return DecodeHex(v)
	}
	return []byte(v), nil
}

// ParseBigInt parses a hex (0x prefixed or with hex letters) or decimal
// integer.
func ParseBigInt(v string) (*big.Int, error) {
	s := strings.TrimSpace(v)
	z := new(big.Int)
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		if _, ok := z.SetString(s[2:], 16); ok {
			return z, nil
		}
	case strings.ContainsAny(s, "abcdefABCDEF"):
		if _, ok := z.SetString(s, 16); ok {
			return z, nil
		}
	default:
		if _, ok := z.SetString(s, 10); ok {
			return z, nil
		}
	}
	return nil, fmt.Errorf("invalid number format: %q", v)
}

// DecodeHex decodes a hex string with an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	return hex.DecodeString(s)
}
