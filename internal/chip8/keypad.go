package chip8

// KeyCount is the number of keys on the hex keypad (0x0-0xF).
const KeyCount = 16

// Keypad holds the down state of each hex key. The host writes it; the VM
// only reads it.
type Keypad [KeyCount]bool

// Set marks key k as down or up. Only the low nibble of k is used.
func (k *Keypad) Set(key byte, down bool) {
	k[key&0xF] = down
}

// IsDown reports whether key k is held. Only the low nibble of k is used.
func (k *Keypad) IsDown(key byte) bool {
	return k[key&0xF]
}
