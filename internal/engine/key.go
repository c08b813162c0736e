package engine

// KeyName enumerates the non-printable keys the handler understands.
// Printable input arrives as KeyASCII with the produced character.
type KeyName int

const (
	KeyASCII KeyName = iota
	KeyUnknown
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyReturn
	KeyEsc
	KeySpace
	KeyTab
	KeyPageUp
	KeyPageDown
)

// Key is one key event as delivered by the host IME.
type Key struct {
	// Ascii is the character the key produces, already shifted.
	// Zero for non-printable keys.
	Ascii rune

	Name  KeyName
	Shift bool
	Ctrl  bool
}

// AsciiKey builds a printable key event.
func AsciiKey(ch rune) Key {
	return Key{Ascii: ch, Name: KeyASCII}
}

// NamedKey builds a non-printable key event.
func NamedKey(name KeyName) Key {
	return Key{Name: name}
}
