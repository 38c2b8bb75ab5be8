// Separate package for hardware/keys related config structure.
// Ugly workaround to import cycles.
package keys_config

type Config struct {
	Enable bool `hcl:"enable"`
	// Device is the kernel input character device to read key events
	// from, e.g. /dev/input/keypad0. Empty means no hardware present.
	Device string `hcl:"device"`
}
