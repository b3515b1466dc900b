package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseResult decodes a decision matrix from a service response body.
//
// The body may carry extra noise around the JSON (markdown code fences,
// preamble text) and any field inside the object may be missing or of
// the wrong type. The top-level record must be a JSON object; every
// field below it is decoded independently so one malformed field never
// blocks the others.
func ParseResult(data []byte) (*DebateResult, error) {
	payload, ok := ExtractJSON(string(data))
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var raw struct {
		Thesis     json.RawMessage `json:"thesis"`
		Antithesis json.RawMessage `json:"antithesis"`
		Risks      json.RawMessage `json:"risks"`
		Synthesis  json.RawMessage `json:"synthesis"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}

	return &DebateResult{
		Thesis:     decodeArgument(raw.Thesis),
		Antithesis: decodeArgument(raw.Antithesis),
		Risks:      decodeRisks(raw.Risks),
		Synthesis:  decodeSynthesis(raw.Synthesis),
	}, nil
}

// ExtractJSON finds the first balanced JSON object in a string that may
// contain markdown code fences or surrounding prose. Returns false if
// no complete object is present.
func ExtractJSON(s string) (string, bool) {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func decodeArgument(raw json.RawMessage) *Argument {
	var fields struct {
		Title  json.RawMessage `json:"title"`
		Points json.RawMessage `json:"points"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil || string(raw) == "null" {
		return nil
	}

	arg := &Argument{}
	if len(fields.Title) > 0 {
		var title string
		if json.Unmarshal(fields.Title, &title) == nil {
			arg.Title = title
		}
	}
	if len(fields.Points) > 0 {
		var points []string
		if json.Unmarshal(fields.Points, &points) == nil {
			arg.Points = points
		}
	}
	return arg
}

func decodeRisks(raw json.RawMessage) []Risk {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}

	risks := make([]Risk, 0, len(items))
	for _, item := range items {
		var fields struct {
			Severity json.RawMessage `json:"severity"`
			Title    json.RawMessage `json:"title"`
			Desc     json.RawMessage `json:"desc"`
		}
		if json.Unmarshal(item, &fields) != nil {
			continue
		}
		var risk Risk
		var severity string
		if len(fields.Severity) > 0 && json.Unmarshal(fields.Severity, &severity) == nil {
			risk.Severity = ParseSeverity(severity)
		} else {
			risk.Severity = SeverityUnknown
		}
		if len(fields.Title) > 0 {
			json.Unmarshal(fields.Title, &risk.Title)
		}
		if len(fields.Desc) > 0 {
			json.Unmarshal(fields.Desc, &risk.Desc)
		}
		risks = append(risks, risk)
	}
	// Preserve "present but empty" vs "absent": an empty array decodes
	// to a non-nil empty slice, which Normalize still treats as no risks.
	return risks
}

func decodeSynthesis(raw json.RawMessage) *Synthesis {
	var fields struct {
		Recommendation json.RawMessage `json:"recommendation"`
		Summary        json.RawMessage `json:"summary"`
		Confidence     json.RawMessage `json:"confidence"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil || string(raw) == "null" {
		return nil
	}

	synth := &Synthesis{}
	if len(fields.Recommendation) > 0 {
		json.Unmarshal(fields.Recommendation, &synth.Recommendation)
	}
	if len(fields.Summary) > 0 {
		json.Unmarshal(fields.Summary, &synth.Summary)
	}
	if len(fields.Confidence) > 0 {
		var conf float64
		if json.Unmarshal(fields.Confidence, &conf) == nil {
			synth.Confidence = int(conf)
		}
	}
	return synth
}
