package webgain

// HostEditor is the host side of an automation gesture. Hosts use the begin/end bracket to
// record a single automation change instead of a stream of raw writes.
type HostEditor interface {
	BeginEdit(id string)
	PerformEdit(id string, normalized float32)
	EndEdit(id string)
}

// ParamSetter writes parameters on behalf of the UI through bracketed transactions
type ParamSetter struct {
	host   HostEditor
	origin Origin
}

// NewParamSetter creates a setter reporting to host, which may be nil
func NewParamSetter(host HostEditor) *ParamSetter {
	return &ParamSetter{host: host, origin: OriginUI}
}

// Transaction is one begin/set/end gesture on a parameter. The value becomes visible to
// the audio context when End commits it, so of two overlapping transactions the one that
// ends last wins.
type Transaction struct {
	setter *ParamSetter
	param  *GainParam
	value  float32
	set    bool
	ended  bool
}

// BeginSetParameter opens a transaction on p
func (s *ParamSetter) BeginSetParameter(p *GainParam) Transaction {
	if s.host != nil {
		s.host.BeginEdit(p.ID())
	}
	return Transaction{setter: s, param: p}
}

// SetParameter runs a complete begin/set/end transaction writing v to p
func (s *ParamSetter) SetParameter(p *GainParam, v float32) {
	tx := s.BeginSetParameter(p)
	tx.Set(v)
	tx.End()
}

// Set records the value to commit and reports it to the host
func (tx *Transaction) Set(v float32) {
	if tx.ended {
		return
	}
	tx.value = tx.param.clamp(v)
	tx.set = true
	if tx.setter.host != nil {
		tx.setter.host.PerformEdit(tx.param.ID(), tx.param.Normalize(tx.value))
	}
}

// End commits the recorded value through GainParam.Write and closes the gesture. Calling
// End twice is a no-op.
func (tx *Transaction) End() {
	if tx.ended {
		return
	}
	tx.ended = true
	if tx.set {
		tx.param.Write(tx.value, tx.setter.origin)
	}
	if tx.setter.host != nil {
		tx.setter.host.EndEdit(tx.param.ID())
	}
}
