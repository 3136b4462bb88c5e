package sysutil

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ClearTerminal clears the terminal screen in supported operating systems.
func ClearTerminal() {
	if runtime.GOOS == "windows" {
		cmd := exec.Command("cmd", "/c", "cls")
		cmd.Stdout = os.Stdout
		_ = cmd.Run()
		return
	}

	// ANSI clear plus cursor home, avoids spawning a process on POSIX.
	fmt.Print("\033[2J\033[H")
}
