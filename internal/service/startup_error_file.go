package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StartupErrorFile is the file name written by WriteStartupErrorFile.
const StartupErrorFile = "startup-error.log"

// WriteStartupErrorFile overwrites logDir/startup-error.log with err, so only
// the most recent failure is kept. Write failures are ignored.
func WriteStartupErrorFile(logDir string, err error) {
	_ = os.MkdirAll(logDir, 0755)

	f, ferr := os.Create(filepath.Join(logDir, StartupErrorFile))
	if ferr != nil {
		return
	}
	defer f.Close()

	host, _ := os.Hostname()
	fmt.Fprintf(f, "[%s] %s STARTUP ERROR on %s (pid %d)\n%v\n",
		time.Now().Format("2006-01-02 15:04:05"), Name, host, os.Getpid(), err)
}
