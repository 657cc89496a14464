package model

import (
	"encoding/json"
	"testing"
)

func TestMetaMerge_UnsetPatchFieldsLeaveExistingValues(t *testing.T) {
	m := Meta{
		Source:   "FRED RRPONTSYD",
		LastDate: "2025-05-01",
		Extra:    map[string]json.RawMessage{"unit": json.RawMessage(`"%"`)},
	}
	m.Merge(Meta{LastDate: "2025-06-01"})

	if m.Source != "FRED RRPONTSYD" {
		t.Errorf("unset patch field overwrote source: %q", m.Source)
	}
	if m.LastDate != "2025-06-01" {
		t.Errorf("set patch field not applied: %q", m.LastDate)
	}
	if string(m.Extra["unit"]) != `"%"` {
		t.Error("extra key lost during merge")
	}
}

func TestMetaJSON_KnownKeysTypedUnknownKeysKept(t *testing.T) {
	raw := []byte(`{"source":"x","beta_vs_btc":1.25,"custom":"kept"}`)
	var m Meta
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	if m.Source != "x" || m.BetaVsBTC == nil || *m.BetaVsBTC != 1.25 {
		t.Errorf("known keys not parsed: %+v", m)
	}
	if string(m.Extra["custom"]) != `"kept"` {
		t.Errorf("unknown key not kept: %v", m.Extra)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	var round Meta
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatal(err)
	}
	if round.Source != m.Source || *round.BetaVsBTC != *m.BetaVsBTC ||
		string(round.Extra["custom"]) != string(m.Extra["custom"]) {
		t.Errorf("meta did not round-trip: %s", out)
	}
}

func TestMetaIsZero(t *testing.T) {
	if !(Meta{}).IsZero() {
		t.Error("zero meta should report zero")
	}
	if (Meta{Source: "s"}).IsZero() {
		t.Error("meta with a source is not zero")
	}
	if (Meta{Extra: map[string]json.RawMessage{"k": nil}}).IsZero() {
		t.Error("meta with extra keys is not zero")
	}

	// An empty meta object in a store file is still a meta object; dropping
	// it on save would change the record's shape.
	var m Meta
	if err := json.Unmarshal([]byte(`{}`), &m); err != nil {
		t.Fatal(err)
	}
	if m.IsZero() {
		t.Error("meta parsed from an empty object should not report zero")
	}
}
