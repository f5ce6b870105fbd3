package manager

import (
	"bufio"
	"io"
	"strings"
)

// 命令以换行结尾；回复由若干行组成，以一个空行结尾
const replyTerminator = "\n\n"

// WriteCommand 发送一条命令，自动补上结尾换行
func WriteCommand(w io.Writer, cmd string) error {
	cmd = strings.TrimRight(cmd, "\r\n")
	_, err := io.WriteString(w, cmd+"\n")
	return err
}

// ReadReply 读取一条完整回复，不含结尾空行
func ReadReply(r *bufio.Reader) (string, error) {
	lines := make([]string, 0, 1)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
}
