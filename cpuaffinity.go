package jointtrack

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"
	"unsafe"
)

// SetCPUAffinity sets the CPU Affinity mask of the program to run on the
// specified cores.  Pinning the frame loop to the fast cores of a big.LITTLE
// board keeps detection time steady.
func SetCPUAffinity(mask uintptr) error {

	_, _, err := syscall.RawSyscall(syscall.SYS_SCHED_SETAFFINITY, 0,
		unsafe.Sizeof(mask), uintptr(unsafe.Pointer(&mask)))

	if err != 0 {
		return fmt.Errorf("failed to set CPU affinity: %w", err)
	}

	return nil
}

// GetCPUAffinity gets the current CPU Affinity mask the program is running on
func GetCPUAffinity() (uintptr, error) {

	var mask uintptr

	_, _, err := syscall.RawSyscall(syscall.SYS_SCHED_GETAFFINITY, 0,
		unsafe.Sizeof(mask), uintptr(unsafe.Pointer(&mask)))

	if err != 0 {
		return 0, fmt.Errorf("failed to get CPU affinity: %w", err)
	}

	return mask, nil
}

// CPUCoreMask calculates the core mask by passing in the CPU core numbers as a
// slice, eg: []int{4,5,6,7}
func CPUCoreMask(cores []int) uintptr {

	var mask uintptr

	for _, core := range cores {
		mask |= 1 << core
	}

	return mask
}

// ParseCPUList parses a comma delimited list of CPU core numbers such as
// "4,5,6,7" as given on the command line
func ParseCPUList(list string) ([]int, error) {

	var cores []int
	maxCore := int(unsafe.Sizeof(uintptr(0)) * 8)

	for _, word := range strings.Split(list, ",") {
		trimmed := strings.TrimSpace(word)

		if trimmed == "" {
			continue
		}

		core, err := strconv.Atoi(trimmed)

		if err != nil {
			return nil, fmt.Errorf("invalid cpu core %q: %w", trimmed, err)
		}

		if core < 0 || core >= maxCore {
			return nil, fmt.Errorf("cpu core %d out of range 0-%d", core, maxCore-1)
		}

		cores = append(cores, core)
	}

	return cores, nil
}
