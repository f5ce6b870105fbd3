package manager

import (
	"EH-Trie/config"
	"EH-Trie/pkg/system/sysPrint"
	"EH-Trie/pkg/utils/datastructure"
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const (
	maxAcceptDelay = 1 * time.Second
)

var (
	ErrFailToRead  = "trie manager failed to read client message:"
	ErrReplyClient = "reply to client failed, client addr:"
	ErrAccept      = "trie manager failed to accept connection:"
	ReplyOK        = []byte("OK")
)

type commandFunc func(c *client, args [][]byte) error

// TrieManager 持有一棵前缀树并通过 TCP 提供命令服务
// 前缀树本身不加锁，由 trieLock 保证 ADD 独占、查询共享
type TrieManager struct {
	trie       *datastructure.Trie
	trieLock   sync.RWMutex
	config     *config.TrieConfig
	listener   net.Listener
	clientList []*client
	clientLock sync.Mutex
	closed     bool // beforeExit 之后不再接收新客户端，受 clientLock 保护
	handlers   sync.WaitGroup
	commandMap map[string]commandFunc
	readerPool *ReaderPool
	stop       chan struct{}
	stopOnce   sync.Once
	done       chan struct{}
}

type client struct {
	conn net.Conn
}

// ReaderPool bufio.Reader 对象池，缓冲区大小即单条命令的最大长度
type ReaderPool struct {
	pool *sync.Pool
}

func NewReaderPool(size int) *ReaderPool {
	return &ReaderPool{
		pool: &sync.Pool{
			New: func() interface{} {
				return bufio.NewReaderSize(nil, size)
			},
		},
	}
}

func (p *ReaderPool) Get(r io.Reader) *bufio.Reader {
	br := p.pool.Get().(*bufio.Reader)
	br.Reset(r)
	return br
}

func (p *ReaderPool) Put(br *bufio.Reader) {
	br.Reset(nil)
	p.pool.Put(br)
}

// NewTrieManager 创建 manager，trie 为 nil 时使用空树
func NewTrieManager(tc *config.TrieConfig, trie *datastructure.Trie) *TrieManager {
	if trie == nil {
		trie = datastructure.NewTrie()
	}
	tm := &TrieManager{
		trie:       trie,
		config:     tc,
		clientList: make([]*client, 0),
		commandMap: make(map[string]commandFunc),
		readerPool: NewReaderPool(tc.QueryBufferSize),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	tm.registerCommands()
	return tm
}

// RegisterCommand 注册命令，命令名全小写输入
func (tm *TrieManager) RegisterCommand(cmdName string, cmdFunc commandFunc) {
	if _, exists := tm.commandMap[cmdName]; !exists {
		tm.commandMap[cmdName] = cmdFunc
	}
}

// Listen 监听配置中的地址，Serve 之前调用可以提前拿到实际监听地址
func (tm *TrieManager) Listen() error {
	if tm.listener != nil {
		return nil
	}
	listener, err := net.Listen("tcp", tm.config.ManagerAddr)
	if err != nil {
		return err
	}
	tm.listener = listener
	return nil
}

// Addr 返回实际监听地址，未监听时返回 nil
func (tm *TrieManager) Addr() net.Addr {
	if tm.listener == nil {
		return nil
	}
	return tm.listener.Addr()
}

// addClient manager 已关闭时直接断开连接并返回 nil
func (tm *TrieManager) addClient(conn net.Conn) *client {
	tm.clientLock.Lock()
	if tm.closed {
		tm.clientLock.Unlock()
		conn.Close()
		return nil
	}
	cli := &client{
		conn: conn,
	}
	tm.clientList = append(tm.clientList, cli)
	tm.handlers.Add(1)
	tm.clientLock.Unlock()
	sysPrint.LogWriteSystemMsg("client: " + conn.RemoteAddr().String() + " connected.")
	return cli
}

func (tm *TrieManager) removeClient(c *client) {
	tm.clientLock.Lock()
	defer tm.clientLock.Unlock()
	for i := range tm.clientList {
		if tm.clientList[i] == c {
			tm.clientList = append(tm.clientList[:i], tm.clientList[i+1:]...)
			break
		}
	}
}

// ClientCount 返回当前连接的客户端数
func (tm *TrieManager) ClientCount() int {
	tm.clientLock.Lock()
	defer tm.clientLock.Unlock()
	return len(tm.clientList)
}

// Serve 接受连接直到收到退出信号或 SHUTDOWN 命令
// 返回时所有客户端连接均已关闭
func (tm *TrieManager) Serve() error {
	if err := tm.Listen(); err != nil {
		close(tm.done)
		return err
	}
	sysPrint.PrintlnSystemMsg("EH-Trie-Manager start listening at:" + tm.listener.Addr().String() + ", ready to accept connections.")

	signalQuit := make(chan os.Signal, 1)
	signal.Notify(signalQuit, syscall.SIGINT, syscall.SIGTERM)

	// 监听关闭信号
	exited := make(chan struct{})
	go func() {
		select {
		case <-signalQuit:
			sysPrint.PrintlnAndLogWriteSystemMsg("EH-Trie-Manager receive shutdown signal...")
			tm.Shutdown()
		case <-tm.stop:
			sysPrint.PrintlnAndLogWriteSystemMsg("EH-Trie-Manager receive shutdown command...")
		}
		tm.beforeExit()
		close(exited)
	}()
	defer func() {
		signal.Stop(signalQuit)
		<-exited
		tm.handlers.Wait()
		close(tm.done)
	}()

	// 接受连接并处理
	var acceptDelay time.Duration
	for {
		conn, err := tm.listener.Accept()
		if err != nil {
			select {
			case <-tm.stop:
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				tm.Shutdown()
				return nil
			}
			// 连续出错时退避，避免空转
			if acceptDelay == 0 {
				acceptDelay = 5 * time.Millisecond
			} else {
				acceptDelay *= 2
			}
			if acceptDelay > maxAcceptDelay {
				acceptDelay = maxAcceptDelay
			}
			sysPrint.PrintlnAndLogWriteErrorMsg(ErrAccept + err.Error())
			select {
			case <-time.After(acceptDelay):
			case <-tm.stop:
				return nil
			}
			continue
		}
		acceptDelay = 0
		cli := tm.addClient(conn)
		if cli == nil {
			continue
		}
		// 在新的 goroutine 中处理连接
		go tm.handleConnection(cli)
	}
}

// handleConnection 每行一条命令，超过读缓冲区的行整体丢弃并回复错误
func (tm *TrieManager) handleConnection(c *client) {
	reader := tm.readerPool.Get(c.conn)
	defer func() {
		tm.readerPool.Put(reader)
		c.conn.Close()
		tm.removeClient(c)
		sysPrint.LogWriteSystemMsg("client: " + c.conn.RemoteAddr().String() + " disconnected.")
		tm.handlers.Done()
	}()
	for {
		line, err := reader.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			err = discardLine(reader)
			if err != nil {
				tm.logReadErr(err)
				return
			}
			sysPrint.LogWriteErrorMsg(sysPrint.ErrCommandTooLong.Error() + " client addr:" + c.conn.RemoteAddr().String())
			if err = c.Reply([]byte(sysPrint.ErrCommandTooLong.Error())); err != nil {
				sysPrint.PrintlnAndLogWriteErrorMsg(ErrReplyClient + c.conn.RemoteAddr().String())
				return
			}
			continue
		}
		if err != nil && err != io.EOF {
			tm.logReadErr(err)
			return
		}
		// EOF 之前未以换行结尾的最后一条命令同样执行
		if execErr := tm.execute(c, line); execErr != nil {
			sysPrint.PrintlnAndLogWriteErrorMsg(ErrReplyClient + c.conn.RemoteAddr().String())
			return
		}
		if err == io.EOF {
			return
		}
	}
}

// discardLine 丢弃当前行剩余内容，读到换行时返回 nil
func discardLine(reader *bufio.Reader) error {
	for {
		_, err := reader.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return err
		}
	}
}

func (tm *TrieManager) logReadErr(err error) {
	if err == io.EOF || errors.Is(err, net.ErrClosed) {
		return
	}
	sysPrint.PrintlnAndLogWriteErrorMsg(ErrFailToRead + err.Error())
}

// execute 执行一条命令，只有回复客户端失败时返回错误
// 命令名不区分大小写，参数原样传给前缀树
func (tm *TrieManager) execute(c *client, msg []byte) error {
	args := bytes.Fields(msg)
	if len(args) == 0 {
		return nil
	}
	commandName := string(bytes.ToLower(args[0]))
	cmd, ok := tm.commandMap[commandName]
	if !ok {
		return c.Reply([]byte(sysPrint.ErrUnknownCommand.Error()))
	}
	err := cmd(c, args)
	if err != nil {
		if err.Error() == ErrReplyClient {
			return err
		}
		sysPrint.LogWriteErrorMsg(commandName + ": " + err.Error())
		return c.Reply([]byte(err.Error()))
	}
	return nil
}

// Reply 回复一条消息，消息以空行结尾
func (c *client) Reply(buf []byte) error {
	msg := make([]byte, 0, len(buf)+2)
	msg = append(msg, bytes.TrimRight(buf, "\n")...)
	msg = append(msg, replyTerminator...)
	_, err := c.conn.Write(msg)
	if err != nil {
		return errors.New(ErrReplyClient)
	}
	return nil
}

// Shutdown 通知 Serve 退出，可重复调用
func (tm *TrieManager) Shutdown() {
	tm.stopOnce.Do(func() {
		close(tm.stop)
	})
}

// Done Serve 返回后关闭
func (tm *TrieManager) Done() <-chan struct{} {
	return tm.done
}

func (tm *TrieManager) beforeExit() {
	tm.listener.Close()
	tm.clientLock.Lock()
	defer tm.clientLock.Unlock()
	tm.closed = true
	for i := range tm.clientList {
		tm.clientList[i].conn.Close()
	}
}
