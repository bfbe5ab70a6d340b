package app

// Key binding constants used in handleKey.
const (
	KeyQuit          = "q"
	KeyCtrlC         = "ctrl+c"
	KeyUp            = "up"
	KeyDown          = "down"
	KeyJ             = "j"
	KeyK             = "k"
	KeyNext          = "alt+right"
	KeyPrev          = "alt+left"
	KeyTop           = "g"
	KeyBottom        = "G"
	KeyEnter         = "enter"
	KeyEsc           = "esc"
	KeyTab           = "tab"
	KeyOpen          = "o"
	KeyCloseDataset  = "w"
	KeySave          = "s"
	KeyExport        = "e"
	KeyToggleReview  = "r"
	KeyToggleDelete  = "d"
	KeySearch        = "/"
	KeyFilterReview  = "p"
	KeyFilterDeleted = "x"
	KeyDuplicates    = "u"
	KeyDiff          = "v"
	KeyHelp          = "?"
	KeyYes           = "y"
	KeyYesUpper      = "Y"
	KeyNo            = "n"
	KeyNoUpper       = "N"
)
