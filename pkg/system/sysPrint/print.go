package sysPrint

import (
	"errors"
	"log"
	"os"
	"sync"
)

const (
	SYSTEM = "[SYSTEM]:"
	ERROR  = "[ERROR]:"
	FATAL  = "[FATAL]"
)

var (
	ErrInvalidCharacter = ErrorMsg("Invalid character, only lowercase letters a-z are allowed.")
	ErrUnknownCommand   = ErrorMsg("Unknown command error.")
	ErrWrongNumberArgs  = ErrorMsg("wrong number of arguments")
	ErrInvalidWordList  = ErrorMsg("Invalid word in init-word-list.")
	ErrCommandTooLong   = ErrorMsg("Command exceeds query buffer size.")
)

var (
	logFile   *os.File
	logFileMu sync.Mutex
)

// OpenLogFile 打开日志文件，之后的 LogWrite* 会写入该文件
// path 为空时不写日志文件
func OpenLogFile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	return nil
}

func ErrorMsg(msg string) error {
	return errors.New(ERROR + msg)
}

func output(stderr bool, toFile bool, msg string) {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if stderr {
		log.SetOutput(os.Stderr)
		log.Println(msg)
	}
	if toFile && logFile != nil {
		log.SetOutput(logFile)
		log.Println(msg)
		log.SetOutput(os.Stderr)
	}
}

func PrintlnErrorMsg(msg string) {
	output(true, false, ERROR+msg)
}

func PrintlnAndLogWriteErrorMsg(msg string) {
	output(true, true, ERROR+msg)
}

func LogWriteErrorMsg(msg string) {
	output(false, true, ERROR+msg)
}

func PrintlnSystemMsg(msg string) {
	output(true, false, SYSTEM+msg)
}

func PrintlnAndLogWriteSystemMsg(msg string) {
	output(true, true, SYSTEM+msg)
}

func LogWriteSystemMsg(msg string) {
	output(false, true, SYSTEM+msg)
}

// PrintlnAndLogWriteFatalMsg 输出并记录后退出进程
func PrintlnAndLogWriteFatalMsg(msg string) {
	output(true, true, FATAL+msg)
	os.Exit(1)
}

func LogClose() {
	LogWriteSystemMsg("log close...")
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
