package nihao

// Greeting is written once at the cursor position after the screen is taken over
const Greeting = "你好，世界!"

const (
	ExitOk        = 0
	ExitError     = 2
	ExitInterrupt = 130
)

const (
	rendererLight   = "light"
	rendererTcell   = "tcell"
	rendererTea     = "tea"
	rendererNcurses = "ncurses"
)

// Environment variable holding options applied before the command line
const defaultOptsEnv = "NIHAO_DEFAULT_OPTS"
