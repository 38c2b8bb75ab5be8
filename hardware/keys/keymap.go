package keys

// Event types from linux/input-event-codes.h. inputevent-go parses the
// records but does not name the types.
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvRel uint16 = 0x02
	EvAbs uint16 = 0x03
)

// Physical scan codes from linux/input-event-codes.h used by the remap
// table. KEY_Q/W/E are development-board aliases for home/hot/back.
const (
	codeQ              uint16 = 16
	codeW              uint16 = 17
	codeE              uint16 = 18
	codeLeftShift      uint16 = 42
	codeHome           uint16 = 102
	codeEnd            uint16 = 107
	codeMute           uint16 = 113
	codeVolumeDown     uint16 = 114
	codeVolumeUp       uint16 = 115
	codePause          uint16 = 119
	codeStop           uint16 = 128
	codeBack           uint16 = 158
	codeHomepage       uint16 = 172
	codeRewind         uint16 = 168
	codePlay           uint16 = 207
	codeFastForward    uint16 = 208
	codeSearch         uint16 = 217
	codeBrightnessDown uint16 = 224
	codeBrightnessUp   uint16 = 225
	codeNext           uint16 = 0x197
	codePrevious       uint16 = 0x19c
)

var keymap = map[uint16]Key{
	codeQ:              KeyHome,
	codeW:              KeyHot,
	codeE:              KeyBack,
	codeHome:           KeyHome,
	codeHomepage:       KeyHot,
	codeBack:           KeyBack,
	codeEnd:            KeyPowerOn,
	codeVolumeUp:       KeyVolUp,
	codeVolumeDown:     KeyVolDown,
	codeMute:           KeyVolMute,
	codePlay:           KeyMediaPlay,
	codePause:          KeyMediaPause,
	codeStop:           KeyMediaStop,
	codeNext:           KeyMediaNext,
	codePrevious:       KeyMediaPrevious,
	codeRewind:         KeyMediaRewind,
	codeFastForward:    KeyMediaFastForward,
	codeSearch:         KeySearch,
	codeBrightnessDown: KeyBrightnessDown,
	codeBrightnessUp:   KeyBrightnessUp,
}

// Lookup maps a physical scan code to its semantic key. The mapping is
// total: codes outside the table pass through unchanged as standard keys.
// Left shift maps to itself explicitly, other modifiers take the default
// path.
func Lookup(code uint16) (Key, KeyType) {
	if key, ok := keymap[code]; ok {
		return key, KeyTypeCustom
	}
	if code == codeLeftShift {
		return Key(codeLeftShift), KeyTypeStandard
	}
	return Key(code), KeyTypeStandard
}
