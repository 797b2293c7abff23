package serial

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
)

// maxWindowsPort bounds the COM names offered on Windows, where there is no
// device directory to glob.
const maxWindowsPort = 32

var globPatterns = map[string][]string{
	"linux":   {"/dev/ttyACM*", "/dev/ttyUSB*"},
	"darwin":  {"/dev/cu.usbmodem*", "/dev/cu.usbserial*"},
	"freebsd": {"/dev/cuaU*"},
}

// Candidates lists serial devices that may hold the LED board, in probe order
func Candidates() ([]string, error) {
	return candidates(runtime.GOOS, globPatterns[runtime.GOOS])
}

func candidates(goos string, patterns []string) ([]string, error) {
	if goos == "windows" {
		ports := make([]string, 0, maxWindowsPort)
		for i := 1; i <= maxWindowsPort; i++ {
			ports = append(ports, fmt.Sprintf("COM%d", i))
		}
		return ports, nil
	}

	var ports []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad device pattern %q: %w", pattern, err)
		}
		// ttyACM10 sorts after ttyACM9
		sort.Slice(matches, func(i, j int) bool {
			if len(matches[i]) != len(matches[j]) {
				return len(matches[i]) < len(matches[j])
			}
			return matches[i] < matches[j]
		})
		ports = append(ports, matches...)
	}
	return ports, nil
}
