package main

import (
	"EH-Trie/pkg/manager"
	"bufio"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
)

const (
	defaultHost = "127.0.0.1"
	defaultPort = 5300
)

var (
	host string
	port int
)

func init() {
	flag.StringVar(&host, "h", defaultHost, "trie manager host(ip address)")
	flag.IntVar(&port, "p", defaultPort, "trie manager port")
	flag.Parse()
}

func printHelp() {
	fmt.Println("-----help-----")
	fmt.Println("info\t" + "show EH-Trie information")
	fmt.Println("Add [word] [word ...]\t" + "add words (a-z only) to the trie, nothing is added if any word is invalid")
	fmt.Println("Contains [word]\t" + "query whether the word was added")
	fmt.Println("StartsWith [prefix]\t" + "query whether any added word starts with prefix")
	fmt.Println("Search [prefix]\t" + "list added words starting with prefix, all words if prefix is omitted")
	fmt.Println("Shutdown\t" + "shutdown trie manager gracefully")
	fmt.Println("-h / -help \t" + "display help")
	fmt.Println("-q / -quit \t" + "exit client")
}

// session 一条到 trie manager 的连接，断开后在下一条命令前重连
type session struct {
	addr   string
	conn   net.Conn
	reader *bufio.Reader
}

func (s *session) connect() error {
	conn, err := net.Dial("tcp", s.addr)
	if err != nil {
		return err
	}
	s.conn = conn
	s.reader = bufio.NewReader(conn)
	return nil
}

func (s *session) connected() bool {
	return s.conn != nil
}

func (s *session) close() {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
		s.reader = nil
	}
}

func (s *session) do(cmd string) (string, error) {
	if err := manager.WriteCommand(s.conn, cmd); err != nil {
		s.close()
		return "", fmt.Errorf("write to EH-Trie failed, err: %w", err)
	}
	reply, err := manager.ReadReply(s.reader)
	if err != nil {
		s.close()
		return "", fmt.Errorf("receive from EH-Trie failed, err: %w", err)
	}
	return reply, nil
}

func main() {
	s := &session{addr: host + ":" + strconv.Itoa(port)}
	if err := s.connect(); err != nil {
		log.Fatal("connect trie manager error: ", err)
	}
	defer s.close()

	inputReader := bufio.NewReader(os.Stdin)
	for {
		if !s.connected() {
			_ = s.connect()
		}
		if s.connected() {
			fmt.Print(s.addr + "> ")
		} else {
			fmt.Print(s.addr + "(disconnect)> ")
		}

		input, err := inputReader.ReadString('\n')
		if err != nil {
			fmt.Println()
			break
		}
		// 单词大小写原样发送，由服务端校验
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "-q", "-quit":
			fmt.Println("Bye,Have a good day!")
			return
		case "-h", "-help":
			printHelp()
			continue
		}

		if !s.connected() {
			continue
		}
		reply, err := s.do(input)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(reply)
	}
}
