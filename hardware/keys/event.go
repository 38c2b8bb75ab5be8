// Package keys translates raw Linux input-device key events into a
// normalized, device-independent key event stream for the host event loop.
package keys

import "fmt"

type KeyType uint8

const (
	KeyTypeUndefined KeyType = iota
	KeyTypeStandard
	KeyTypeCustom
)

func (kt KeyType) String() string {
	switch kt {
	case KeyTypeStandard:
		return "Standard"
	case KeyTypeCustom:
		return "Custom"
	}
	return "Undefined"
}

// Key is a semantic key identifier. For KeyTypeStandard it carries the
// physical scan code unchanged, for KeyTypeCustom one of the Key* constants.
type Key uint16

const (
	KeyInvalid Key = iota
	KeyHome
	KeyBack
	KeyHot
	KeyVolUp
	KeyVolDown
	KeyVolMute
	KeyPowerOn
	KeyMediaPlay
	KeyMediaPause
	KeyMediaStop
	KeyMediaNext
	KeyMediaPrevious
	KeyMediaRewind
	KeyMediaFastForward
	KeySearch
	KeyBrightnessDown
	KeyBrightnessUp
)

var customKeyName = map[Key]string{
	KeyHome:             "home",
	KeyBack:             "back",
	KeyHot:              "hot",
	KeyVolUp:            "vol-up",
	KeyVolDown:          "vol-down",
	KeyVolMute:          "vol-mute",
	KeyPowerOn:          "power-on",
	KeyMediaPlay:        "media-play",
	KeyMediaPause:       "media-pause",
	KeyMediaStop:        "media-stop",
	KeyMediaNext:        "media-next",
	KeyMediaPrevious:    "media-previous",
	KeyMediaRewind:      "media-rewind",
	KeyMediaFastForward: "media-fastforward",
	KeySearch:           "search",
	KeyBrightnessDown:   "brightness-down",
	KeyBrightnessUp:     "brightness-up",
}

// KeyEvent is one translated key event. Ownership transfers to the caller
// of Session.GetEvent; return it with Session.ReleaseEvent before asking
// for the next one.
type KeyEvent struct {
	Key        Key
	Type       KeyType
	Press      bool
	AutoRepeat bool
}

func (e *KeyEvent) String() string {
	name := ""
	if e.Type == KeyTypeCustom {
		name = customKeyName[e.Key]
	}
	if name == "" {
		name = fmt.Sprintf("%d", e.Key)
	}
	return fmt.Sprintf("KeyEvent(%s %s press=%t repeat=%t)", e.Type.String(), name, e.Press, e.AutoRepeat)
}
