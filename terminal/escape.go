package terminal

// Control sequences written to the terminal. Only these, the row marker and
// CRLF are ever sent by the console.
const (
	CursorHide  = "\x1b[?25l"
	CursorShow  = "\x1b[?25h"
	ClearScreen = "\x1b[2J"
	CursorHome  = "\x1b[H"

	// CursorMaxMove pushes the cursor to the bottom-right corner. The terminal
	// clamps the move, so the resulting position is the window size.
	CursorMaxMove = "\x1b[999C\x1b[999B"

	// CursorPositionQuery is the device status report for the cursor
	// position. The reply has the form ESC [ row ; col R.
	CursorPositionQuery = "\x1b[6n"

	RowMarker = "~"
	CRLF      = "\r\n"
)
