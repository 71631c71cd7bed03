// Package keys maps key names used in controls files to linux input keycodes.
package keys

import (
	"fmt"
	"strings"

	"github.com/bendahl/uinput"
)

// Mouse button codes from linux/input-event-codes.h.
const (
	MouseLeft   = 0x110
	MouseRight  = 0x111
	MouseMiddle = 0x112
)

// Arrow keys, in the order arrow_keys assigns them to a directional group.
var Arrows = [4]int{uinput.KeyUp, uinput.KeyDown, uinput.KeyLeft, uinput.KeyRight}

type keyName struct {
	Name string
	Code int
}

// The first entry for a code is its display name.
var keyNames = []keyName{
	{"esc", uinput.KeyEsc},
	{"escape", uinput.KeyEsc},

	{"1", uinput.Key1},
	{"2", uinput.Key2},
	{"3", uinput.Key3},
	{"4", uinput.Key4},
	{"5", uinput.Key5},
	{"6", uinput.Key6},
	{"7", uinput.Key7},
	{"8", uinput.Key8},
	{"9", uinput.Key9},
	{"0", uinput.Key0},

	{"a", uinput.KeyA},
	{"b", uinput.KeyB},
	{"c", uinput.KeyC},
	{"d", uinput.KeyD},
	{"e", uinput.KeyE},
	{"f", uinput.KeyF},
	{"g", uinput.KeyG},
	{"h", uinput.KeyH},
	{"i", uinput.KeyI},
	{"j", uinput.KeyJ},
	{"k", uinput.KeyK},
	{"l", uinput.KeyL},
	{"m", uinput.KeyM},
	{"n", uinput.KeyN},
	{"o", uinput.KeyO},
	{"p", uinput.KeyP},
	{"q", uinput.KeyQ},
	{"r", uinput.KeyR},
	{"s", uinput.KeyS},
	{"t", uinput.KeyT},
	{"u", uinput.KeyU},
	{"v", uinput.KeyV},
	{"w", uinput.KeyW},
	{"x", uinput.KeyX},
	{"y", uinput.KeyY},
	{"z", uinput.KeyZ},

	{"f1", uinput.KeyF1},
	{"f2", uinput.KeyF2},
	{"f3", uinput.KeyF3},
	{"f4", uinput.KeyF4},
	{"f5", uinput.KeyF5},
	{"f6", uinput.KeyF6},
	{"f7", uinput.KeyF7},
	{"f8", uinput.KeyF8},
	{"f9", uinput.KeyF9},
	{"f10", uinput.KeyF10},
	{"f11", uinput.KeyF11},
	{"f12", uinput.KeyF12},

	{"up", uinput.KeyUp},
	{"down", uinput.KeyDown},
	{"left", uinput.KeyLeft},
	{"right", uinput.KeyRight},

	{"enter", uinput.KeyEnter},
	{"return", uinput.KeyEnter},
	{"space", uinput.KeySpace},
	{" ", uinput.KeySpace},
	{"tab", uinput.KeyTab},
	{"backspace", uinput.KeyBackspace},
	{"insert", uinput.KeyInsert},
	{"delete", uinput.KeyDelete},
	{"del", uinput.KeyDelete},
	{"home", uinput.KeyHome},
	{"end", uinput.KeyEnd},
	{"pageup", uinput.KeyPageup},
	{"pagedown", uinput.KeyPagedown},
	{"capslock", uinput.KeyCapslock},

	{"leftctrl", uinput.KeyLeftctrl},
	{"rightctrl", uinput.KeyRightctrl},
	{"leftshift", uinput.KeyLeftshift},
	{"rightshift", uinput.KeyRightshift},
	{"leftalt", uinput.KeyLeftalt},
	{"rightalt", uinput.KeyRightalt},

	{"minus", uinput.KeyMinus},
	{"-", uinput.KeyMinus},
	{"equal", uinput.KeyEqual},
	{"=", uinput.KeyEqual},
	{"leftbrace", uinput.KeyLeftbrace},
	{"[", uinput.KeyLeftbrace},
	{"rightbrace", uinput.KeyRightbrace},
	{"]", uinput.KeyRightbrace},
	{"semicolon", uinput.KeySemicolon},
	{";", uinput.KeySemicolon},
	{"apostrophe", uinput.KeyApostrophe},
	{"'", uinput.KeyApostrophe},
	{"grave", uinput.KeyGrave},
	{"`", uinput.KeyGrave},
	{"backslash", uinput.KeyBackslash},
	{"\\", uinput.KeyBackslash},
	{"comma", uinput.KeyComma},
	{",", uinput.KeyComma},
	{"dot", uinput.KeyDot},
	{"period", uinput.KeyDot},
	{".", uinput.KeyDot},
	{"slash", uinput.KeySlash},
	{"/", uinput.KeySlash},

	{"kp_0", uinput.KeyKp0},
	{"kp_1", uinput.KeyKp1},
	{"kp_2", uinput.KeyKp2},
	{"kp_3", uinput.KeyKp3},
	{"kp_4", uinput.KeyKp4},
	{"kp_5", uinput.KeyKp5},
	{"kp_6", uinput.KeyKp6},
	{"kp_7", uinput.KeyKp7},
	{"kp_8", uinput.KeyKp8},
	{"kp_9", uinput.KeyKp9},
	{"kp_enter", uinput.KeyKpenter},
	{"kp_plus", uinput.KeyKpplus},
	{"kp_minus", uinput.KeyKpminus},
	{"kp_asterisk", uinput.KeyKpasterisk},
	{"kp_slash", uinput.KeyKpslash},
	{"kp_dot", uinput.KeyKpdot},

	{"mute", uinput.KeyMute},
	{"volumedown", uinput.KeyVolumedown},
	{"volumeup", uinput.KeyVolumeup},

	{"mouse_left", MouseLeft},
	{"mouse_right", MouseRight},
	{"mouse_middle", MouseMiddle},
}

// Table resolves key names to keycodes and back.
type Table struct {
	byName map[string]int
	byCode map[int]string
}

var defaultTable = newTable(keyNames)

// Default returns the built-in key table.
func Default() *Table {
	return defaultTable
}

func newTable(names []keyName) *Table {
	t := &Table{
		byName: make(map[string]int, len(names)),
		byCode: make(map[int]string, len(names)),
	}
	for _, kn := range names {
		t.byName[kn.Name] = kn.Code
		if _, ok := t.byCode[kn.Code]; !ok {
			t.byCode[kn.Code] = kn.Name
		}
	}
	return t
}

// Find returns the keycode for a key name, ignoring case.
func (t *Table) Find(name string) (int, bool) {
	code, ok := t.byName[strings.ToLower(name)]
	return code, ok
}

// Name returns the display name of a keycode.
func (t *Table) Name(code int) string {
	if name, ok := t.byCode[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", code)
}
