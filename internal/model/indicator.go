package model

import "encoding/json"

// Indicator is one record of the persisted dashboard store.
type Indicator struct {
	Name    string  `json:"name"`
	Current float64 `json:"current"`
	Meta    Meta    `json:"meta,omitzero"`
	Detail  string  `json:"detail"`
}

// Meta carries auxiliary fields for an indicator. Known fields are typed;
// anything else a store file carries round-trips untouched through Extra.
type Meta struct {
	Source       string
	LastDate     string
	Window       string
	Coins        []string
	SampleGrowth []float64
	BandFloor    *float64
	BandCeiling  *float64
	Impulse90d   *float64
	BetaVsBTC    *float64
	Reading      *float64
	Extra        map[string]json.RawMessage

	// present records that the store file carried a meta object, even an
	// empty one, so saving writes the key back.
	present bool
}

// IsZero reports whether no meta field is set and no meta object was read
// from the store. Used by omitzero so records without meta keep their shape
// on save.
func (m Meta) IsZero() bool {
	return !m.present &&
		m.Source == "" && m.LastDate == "" && m.Window == "" &&
		m.Coins == nil && m.SampleGrowth == nil &&
		m.BandFloor == nil && m.BandCeiling == nil &&
		m.Impulse90d == nil && m.BetaVsBTC == nil && m.Reading == nil &&
		len(m.Extra) == 0
}

// Merge applies patch on top of m. Set patch fields overwrite, unset fields
// leave the existing value alone, and Extra keys merge per key.
func (m *Meta) Merge(patch Meta) {
	if patch.Source != "" {
		m.Source = patch.Source
	}
	if patch.LastDate != "" {
		m.LastDate = patch.LastDate
	}
	if patch.Window != "" {
		m.Window = patch.Window
	}
	if patch.Coins != nil {
		m.Coins = patch.Coins
	}
	if patch.SampleGrowth != nil {
		m.SampleGrowth = patch.SampleGrowth
	}
	if patch.BandFloor != nil {
		m.BandFloor = patch.BandFloor
	}
	if patch.BandCeiling != nil {
		m.BandCeiling = patch.BandCeiling
	}
	if patch.Impulse90d != nil {
		m.Impulse90d = patch.Impulse90d
	}
	if patch.BetaVsBTC != nil {
		m.BetaVsBTC = patch.BetaVsBTC
	}
	if patch.Reading != nil {
		m.Reading = patch.Reading
	}
	for k, v := range patch.Extra {
		if m.Extra == nil {
			m.Extra = map[string]json.RawMessage{}
		}
		m.Extra[k] = v
	}
}

// JSON key names match the store files written by the previous updater.
const (
	metaKeySource       = "source"
	metaKeyLastDate     = "last_date"
	metaKeyWindow       = "window"
	metaKeyCoins        = "coins"
	metaKeySampleGrowth = "sample_growth"
	metaKeyBandFloor    = "band_floor"
	metaKeyBandCeiling  = "band_ceiling"
	metaKeyImpulse90d   = "impulse_90d_pct"
	metaKeyBetaVsBTC    = "beta_vs_btc"
	metaKeyReading      = "reading"
)

func (m Meta) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Extra)+10)
	for k, v := range m.Extra {
		out[k] = v
	}
	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = raw
		return nil
	}
	if m.Source != "" {
		if err := set(metaKeySource, m.Source); err != nil {
			return nil, err
		}
	}
	if m.LastDate != "" {
		if err := set(metaKeyLastDate, m.LastDate); err != nil {
			return nil, err
		}
	}
	if m.Window != "" {
		if err := set(metaKeyWindow, m.Window); err != nil {
			return nil, err
		}
	}
	if m.Coins != nil {
		if err := set(metaKeyCoins, m.Coins); err != nil {
			return nil, err
		}
	}
	if m.SampleGrowth != nil {
		if err := set(metaKeySampleGrowth, m.SampleGrowth); err != nil {
			return nil, err
		}
	}
	if m.BandFloor != nil {
		if err := set(metaKeyBandFloor, *m.BandFloor); err != nil {
			return nil, err
		}
	}
	if m.BandCeiling != nil {
		if err := set(metaKeyBandCeiling, *m.BandCeiling); err != nil {
			return nil, err
		}
	}
	if m.Impulse90d != nil {
		if err := set(metaKeyImpulse90d, *m.Impulse90d); err != nil {
			return nil, err
		}
	}
	if m.BetaVsBTC != nil {
		if err := set(metaKeyBetaVsBTC, *m.BetaVsBTC); err != nil {
			return nil, err
		}
	}
	if m.Reading != nil {
		if err := set(metaKeyReading, *m.Reading); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

func (m *Meta) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Meta{present: true}
	// A literal null stays in Extra so it survives a save unchanged.
	take := func(key string, dest any) error {
		v, ok := raw[key]
		if !ok || string(v) == "null" {
			return nil
		}
		if err := json.Unmarshal(v, dest); err != nil {
			return err
		}
		delete(raw, key)
		return nil
	}
	if err := take(metaKeySource, &m.Source); err != nil {
		return err
	}
	if err := take(metaKeyLastDate, &m.LastDate); err != nil {
		return err
	}
	if err := take(metaKeyWindow, &m.Window); err != nil {
		return err
	}
	if err := take(metaKeyCoins, &m.Coins); err != nil {
		return err
	}
	if err := take(metaKeySampleGrowth, &m.SampleGrowth); err != nil {
		return err
	}
	if err := take(metaKeyBandFloor, &m.BandFloor); err != nil {
		return err
	}
	if err := take(metaKeyBandCeiling, &m.BandCeiling); err != nil {
		return err
	}
	if err := take(metaKeyImpulse90d, &m.Impulse90d); err != nil {
		return err
	}
	if err := take(metaKeyBetaVsBTC, &m.BetaVsBTC); err != nil {
		return err
	}
	if err := take(metaKeyReading, &m.Reading); err != nil {
		return err
	}
	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}

// Float returns a pointer to v, for the optional numeric meta fields.
func Float(v float64) *float64 { return &v }
