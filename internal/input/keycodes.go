package input

import "strings"

// Linux evdev key codes for the keys a row can monitor, plus the mouse
// button codes the capture layer understands.
const (
	CodeEsc        uint16 = 1
	Code1          uint16 = 2
	Code2          uint16 = 3
	Code3          uint16 = 4
	Code4          uint16 = 5
	Code5          uint16 = 6
	Code6          uint16 = 7
	Code7          uint16 = 8
	Code8          uint16 = 9
	Code9          uint16 = 10
	Code0          uint16 = 11
	CodeTab        uint16 = 15
	CodeQ          uint16 = 16
	CodeW          uint16 = 17
	CodeE          uint16 = 18
	CodeR          uint16 = 19
	CodeT          uint16 = 20
	CodeY          uint16 = 21
	CodeU          uint16 = 22
	CodeI          uint16 = 23
	CodeO          uint16 = 24
	CodeP          uint16 = 25
	CodeEnter      uint16 = 28
	CodeLeftCtrl   uint16 = 29
	CodeA          uint16 = 30
	CodeS          uint16 = 31
	CodeD          uint16 = 32
	CodeF          uint16 = 33
	CodeG          uint16 = 34
	CodeH          uint16 = 35
	CodeJ          uint16 = 36
	CodeK          uint16 = 37
	CodeL          uint16 = 38
	CodeLeftShift  uint16 = 42
	CodeZ          uint16 = 44
	CodeX          uint16 = 45
	CodeC          uint16 = 46
	CodeV          uint16 = 47
	CodeB          uint16 = 48
	CodeN          uint16 = 49
	CodeM          uint16 = 50
	CodeLeftAlt    uint16 = 56
	CodeSpace      uint16 = 57
	CodeF1         uint16 = 59
	CodeF2         uint16 = 60
	CodeF3         uint16 = 61
	CodeF4         uint16 = 62
	CodeF5         uint16 = 63
	CodeF6         uint16 = 64
	CodeF7         uint16 = 65
	CodeF8         uint16 = 66
	CodeF9         uint16 = 67
	CodeF10        uint16 = 68
	CodeF11        uint16 = 87
	CodeF12        uint16 = 88
	CodeUp         uint16 = 103
	CodeLeft       uint16 = 105
	CodeRight      uint16 = 106
	CodeDown       uint16 = 108

	CodeBTNLeft   uint16 = 0x110
	CodeBTNRight  uint16 = 0x111
	CodeBTNMiddle uint16 = 0x112
)

// KeyOption pairs a monitorable key code with its display name.
type KeyOption struct {
	Code uint16
	Name string
}

// KeyOptions lists every key a row may be bound to, in menu order.
var KeyOptions = []KeyOption{
	{CodeA, "A"}, {CodeB, "B"}, {CodeC, "C"}, {CodeD, "D"}, {CodeE, "E"},
	{CodeF, "F"}, {CodeG, "G"}, {CodeH, "H"}, {CodeI, "I"}, {CodeJ, "J"},
	{CodeK, "K"}, {CodeL, "L"}, {CodeM, "M"}, {CodeN, "N"}, {CodeO, "O"},
	{CodeP, "P"}, {CodeQ, "Q"}, {CodeR, "R"}, {CodeS, "S"}, {CodeT, "T"},
	{CodeU, "U"}, {CodeV, "V"}, {CodeW, "W"}, {CodeX, "X"}, {CodeY, "Y"},
	{CodeZ, "Z"},
	{Code0, "0"}, {Code1, "1"}, {Code2, "2"}, {Code3, "3"}, {Code4, "4"},
	{Code5, "5"}, {Code6, "6"}, {Code7, "7"}, {Code8, "8"}, {Code9, "9"},
	{CodeLeft, "LEFT ARROW"}, {CodeRight, "RIGHT ARROW"},
	{CodeUp, "UP ARROW"}, {CodeDown, "DOWN ARROW"},
	{CodeSpace, "SPACE"}, {CodeEnter, "ENTER"}, {CodeTab, "TAB"},
	{CodeEsc, "ESC"}, {CodeLeftShift, "SHIFT"}, {CodeLeftCtrl, "CTRL"},
	{CodeLeftAlt, "ALT"},
	{CodeF1, "F1"}, {CodeF2, "F2"}, {CodeF3, "F3"}, {CodeF4, "F4"},
	{CodeF5, "F5"}, {CodeF6, "F6"}, {CodeF7, "F7"}, {CodeF8, "F8"},
	{CodeF9, "F9"}, {CodeF10, "F10"}, {CodeF11, "F11"}, {CodeF12, "F12"},
}

// KeyName returns the display name for a key code, or "UNKNOWN".
func KeyName(code uint16) string {
	for _, opt := range KeyOptions {
		if opt.Code == code {
			return opt.Name
		}
	}
	return "UNKNOWN"
}

// KeyCodeByName resolves a display name back to its key code. Lookup is
// case-insensitive; returns 0 if unknown.
func KeyCodeByName(name string) uint16 {
	for _, opt := range KeyOptions {
		if strings.EqualFold(opt.Name, name) {
			return opt.Code
		}
	}
	return 0
}

// KeyLabel returns the short gutter label for a key code, at most three
// characters so it fits the row gutter at full scale.
func KeyLabel(code uint16) string {
	switch code {
	case CodeLeft:
		return "LFT"
	case CodeRight:
		return "RGT"
	case CodeUp:
		return "UP"
	case CodeDown:
		return "DWN"
	case CodeSpace:
		return "SPC"
	case CodeEnter:
		return "ENT"
	case CodeLeftShift:
		return "SHF"
	case CodeLeftCtrl:
		return "CTL"
	}

	name := KeyName(code)
	if name == "UNKNOWN" {
		return "UNK"
	}
	if len(name) <= 3 {
		return name
	}
	return name[:3]
}
