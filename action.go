package webgain

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"
)

// ErrMalformedMessage is wrapped by every inbound payload that fails to decode
var ErrMalformedMessage = errors.New("malformed message")

// ActionType is the "type" discriminator on the wire
type ActionType string

const (
	ActionInit    ActionType = "init"
	ActionSetSize ActionType = "set_size"
	ActionSetGain ActionType = "set_gain"

	noticeParamChange = "param_change"
)

// Action is a decoded inbound message from the UI
type Action interface {
	ActionType() ActionType
}

// Init asks for the current viewport size
type Init struct{}

// SetSize asks the host window to resize
type SetSize struct {
	Width  uint32
	Height uint32
}

// SetGain sets the gain parameter to Value (a linear amplitude)
type SetGain struct {
	Value float32
}

func (Init) ActionType() ActionType    { return ActionInit }
func (SetSize) ActionType() ActionType { return ActionSetSize }
func (SetGain) ActionType() ActionType { return ActionSetGain }

// DecodeAction decodes a raw inbound payload. Anything that is not exactly one of the known
// actions, with all of its fields under their exact lowercase keys, comes back as an error
// wrapping ErrMalformedMessage.
func DecodeAction(payload []byte) (Action, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, errors.Wrapf(ErrMalformedMessage, "error decoding payload: %v", err)
	}
	var typ string
	ok, err := decodeField(fields, "type", &typ)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrap(ErrMalformedMessage, "missing 'type'")
	}

	switch ActionType(typ) {
	case ActionInit:
		return Init{}, nil

	case ActionSetSize:
		var width, height uint32
		okW, err := decodeField(fields, "width", &width)
		if err != nil {
			return nil, err
		}
		okH, err := decodeField(fields, "height", &height)
		if err != nil {
			return nil, err
		}
		if !okW || !okH {
			return nil, errors.Wrap(ErrMalformedMessage, "'set_size' requires 'width' and 'height'")
		}
		return SetSize{Width: width, Height: height}, nil

	case ActionSetGain:
		var value float64
		ok, err = decodeField(fields, "value", &value)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Wrap(ErrMalformedMessage, "'set_gain' requires 'value'")
		}
		// wider than float32 still clamps at Write
		return SetGain{Value: float32(math.Max(-math.MaxFloat32, math.Min(value, math.MaxFloat32)))}, nil

	default:
		return nil, errors.Wrapf(ErrMalformedMessage, "unknown type '%s'", typ)
	}
}

// decodeField decodes fields[key] into v, reporting whether the key was present. A present
// null counts as missing.
func decodeField(fields map[string]json.RawMessage, key string, v any) (bool, error) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, errors.Wrapf(ErrMalformedMessage, "field '%s': %v", key, err)
	}
	return true, nil
}

// SetSizeNotice tells the UI the current viewport size, in reply to Init
type SetSizeNotice struct {
	Width  uint32
	Height uint32
}

func (n SetSizeNotice) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   ActionType `json:"type"`
		Width  uint32     `json:"width"`
		Height uint32     `json:"height"`
	}{ActionSetSize, n.Width, n.Height})
}

// ParamChangeNotice tells the UI a parameter changed, carrying the freshly read value
type ParamChangeNotice struct {
	Action ActionType
	Value  float32
	Text   string
}

func (n ParamChangeNotice) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string     `json:"type"`
		Action ActionType `json:"action"`
		Value  float32    `json:"value"`
		Text   string     `json:"text"`
	}{noticeParamChange, n.Action, n.Value, n.Text})
}
