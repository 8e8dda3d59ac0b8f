package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/viper"

	"hakeys/log"
)

// Marker env var set on the re-exec'd background child.
const bgEnv = "_HAKEYS_BG"

func inBackground() bool {
	return os.Getenv(bgEnv) != ""
}

func pidFilePath() string {
	return filepath.Join(log.Dir(), "hakeys.pid")
}

// startBackground re-execs the listener detached from the terminal and
// records its PID for `hakeys stop`.
func startBackground() error {
	dir, err := log.ResolveDir(logDirFlag)
	if err != nil {
		return fmt.Errorf("resolve log directory: %w", err)
	}
	log.SetDir(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	if data, err := os.ReadFile(pidFilePath()); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil && isRunning(pid) {
			return fmt.Errorf("already running (pid %d); stop it first with 'hakeys stop'", pid)
		}
		os.Remove(pidFilePath())
	}

	exe, err := os.Executable()
	if err != nil {
		return err
	}
	args := []string{"listen", "--backend", viper.GetString("backend")}
	if p := viper.GetString("config"); p != "" {
		args = append(args, "--config", p)
	}
	if logDirFlag != "" {
		args = append(args, "--log-dir", logDirFlag)
	}

	cmd := exec.Command(exe, args...)
	cmd.Env = append(os.Environ(), bgEnv+"=1")
	devnull, err := os.Open(os.DevNull)
	if err != nil {
		return err
	}
	defer devnull.Close()
	cmd.Stdin, cmd.Stdout, cmd.Stderr = devnull, devnull, devnull

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start background listener: %w", err)
	}

	pid := cmd.Process.Pid
	if err := os.WriteFile(pidFilePath(), []byte(strconv.Itoa(pid)), 0644); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	fmt.Printf("Started background listener (pid %d). Logs: %s\n", pid, filepath.Join(dir, "hakeys_log.txt"))
	return nil
}

func stopBackground() error {
	dir, err := log.ResolveDir(logDirFlag)
	if err != nil {
		return fmt.Errorf("resolve log directory: %w", err)
	}
	log.SetDir(dir)

	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return fmt.Errorf("no pid file found, nothing to stop")
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		os.Remove(pidFilePath())
		return fmt.Errorf("could not read pid file: %w", err)
	}

	defer os.Remove(pidFilePath())

	proc, err := os.FindProcess(pid)
	if err != nil {
		fmt.Printf("No process %d found\n", pid)
		return nil
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		fmt.Printf("No process %d found\n", pid)
		return nil
	}
	fmt.Printf("Stopped process %d\n", pid)
	return nil
}

func isRunning(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
