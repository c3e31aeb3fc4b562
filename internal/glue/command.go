package glue

import "strconv"

// Command is a one-byte lifecycle code sent from the platform thread to the
// worker thread over the command pipe.
type Command int8

// Wire values match the Android native-app glue numbering.
const (
	CmdInvalid Command = -1

	CmdInputChanged       Command = 0
	CmdInitWindow         Command = 1
	CmdTermWindow         Command = 2
	CmdWindowResized      Command = 3
	CmdWindowRedrawNeeded Command = 4
	CmdContentRectChanged Command = 5
	CmdGainedFocus        Command = 6
	CmdLostFocus          Command = 7
	CmdConfigChanged      Command = 8
	CmdLowMemory          Command = 9
	CmdStart              Command = 10
	CmdResume             Command = 11
	CmdSaveState          Command = 12
	CmdPause              Command = 13
	CmdStop               Command = 14
	CmdDestroy            Command = 15
)

var commandNames = map[Command]string{
	CmdInvalid:            "invalid",
	CmdInputChanged:       "input_changed",
	CmdInitWindow:         "init_window",
	CmdTermWindow:         "term_window",
	CmdWindowResized:      "window_resized",
	CmdWindowRedrawNeeded: "window_redraw_needed",
	CmdContentRectChanged: "content_rect_changed",
	CmdGainedFocus:        "gained_focus",
	CmdLostFocus:          "lost_focus",
	CmdConfigChanged:      "config_changed",
	CmdLowMemory:          "low_memory",
	CmdStart:              "start",
	CmdResume:             "resume",
	CmdSaveState:          "save_state",
	CmdPause:              "pause",
	CmdStop:               "stop",
	CmdDestroy:            "destroy",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "cmd(" + strconv.Itoa(int(c)) + ")"
}

// IsActivityState reports whether c is one of the four lifecycle phases
// tracked in the activity state field.
func (c Command) IsActivityState() bool {
	switch c {
	case CmdStart, CmdResume, CmdPause, CmdStop:
		return true
	}
	return false
}

// isNotification reports whether c may be posted without waiting for the
// worker to acknowledge it.
func (c Command) isNotification() bool {
	switch c {
	case CmdConfigChanged, CmdLowMemory, CmdGainedFocus, CmdLostFocus,
		CmdWindowResized, CmdWindowRedrawNeeded, CmdContentRectChanged:
		return true
	}
	return false
}
