package manager

import (
	"EH-Trie/pkg/system/sysPrint"
	"EH-Trie/pkg/utils/byteStringConv"
	"strconv"
	"strings"
)

const (
	trueString      = "true"
	falseString     = "false"
	emptyListString = "(empty list)"
	emptyWordString = `""`
)

func boolString(b bool) string {
	if b {
		return trueString
	}
	return falseString
}

// execInfo info 命令
// 获取 manager 与前缀树相关信息
func (tm *TrieManager) execInfo(c *client, args [][]byte) error {
	if len(args) != 1 {
		return c.Reply([]byte(sysPrint.ErrWrongNumberArgs.Error()))
	}
	tm.trieLock.RLock()
	words := tm.trie.Len()
	nodes := tm.trie.NodeCount()
	tm.trieLock.RUnlock()

	builder := strings.Builder{}
	builder.WriteString("[INFO]\n")
	builder.WriteString("manager address: " + tm.listener.Addr().String() + "\n")
	builder.WriteString("connected clients: " + strconv.Itoa(tm.ClientCount()) + "\n")
	builder.WriteString("words: " + strconv.Itoa(words) + "\n")
	builder.WriteString("nodes: " + strconv.Itoa(nodes) + "\n")
	return c.Reply(byteStringConv.StringToBytes(builder.String()))
}

// execAdd 插入单词命令
// 输入格式：Add [word] [word ...]
// 示例：Add cat car card
// 每个单词回复一行 true（新插入）或 false（已存在）
// 任意单词非法时回复错误，且所有单词都不插入
func (tm *TrieManager) execAdd(c *client, args [][]byte) error {
	if len(args) < 2 {
		return c.Reply([]byte(sysPrint.ErrWrongNumberArgs.Error()))
	}
	words := make([]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		words = append(words, byteStringConv.BytesToString(arg))
	}
	tm.trieLock.Lock()
	added, err := tm.trie.AddWords(words...)
	tm.trieLock.Unlock()
	if err != nil {
		return err
	}
	results := make([]string, 0, len(added))
	for _, ok := range added {
		results = append(results, boolString(ok))
	}
	return c.Reply([]byte(strings.Join(results, "\n")))
}

// execContains 查询单词是否存在命令
// 输入格式：Contains [word]
// 示例：Contains cat
// 存在回复 true，否则回复 false
func (tm *TrieManager) execContains(c *client, args [][]byte) error {
	if len(args) != 2 {
		return c.Reply([]byte(sysPrint.ErrWrongNumberArgs.Error()))
	}
	tm.trieLock.RLock()
	ok, err := tm.trie.Contains(byteStringConv.BytesToString(args[1]))
	tm.trieLock.RUnlock()
	if err != nil {
		return err
	}
	return c.Reply([]byte(boolString(ok)))
}

// execSearch 前缀查询命令
// 输入格式：Search [prefix]
// 示例：Search ca
// prefix 可以为空，此时返回全部单词；结果按字典序每行一个
func (tm *TrieManager) execSearch(c *client, args [][]byte) error {
	if len(args) > 2 {
		return c.Reply([]byte(sysPrint.ErrWrongNumberArgs.Error()))
	}
	prefix := ""
	if len(args) == 2 {
		prefix = byteStringConv.BytesToString(args[1])
	}
	tm.trieLock.RLock()
	words, err := tm.trie.Search(prefix)
	tm.trieLock.RUnlock()
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return c.Reply([]byte(emptyListString))
	}
	// 空行用于结束回复，空串单词以 "" 表示
	if words[0] == "" {
		words[0] = emptyWordString
	}
	return c.Reply([]byte(strings.Join(words, "\n")))
}

// execStartsWith 查询是否存在以 prefix 开头的单词命令
// 输入格式：StartsWith [prefix]
// 示例：StartsWith ca
// 存在回复 true，否则回复 false
func (tm *TrieManager) execStartsWith(c *client, args [][]byte) error {
	if len(args) != 2 {
		return c.Reply([]byte(sysPrint.ErrWrongNumberArgs.Error()))
	}
	tm.trieLock.RLock()
	ok, err := tm.trie.StartsWith(byteStringConv.BytesToString(args[1]))
	tm.trieLock.RUnlock()
	if err != nil {
		return err
	}
	return c.Reply([]byte(boolString(ok)))
}

// execShutdown 关闭 manager 命令
// 输入格式：Shutdown
func (tm *TrieManager) execShutdown(c *client, args [][]byte) error {
	if len(args) != 1 {
		return c.Reply([]byte(sysPrint.ErrWrongNumberArgs.Error()))
	}
	err := c.Reply(ReplyOK)
	if err != nil {
		return err
	}
	tm.Shutdown()
	return nil
}

func (tm *TrieManager) registerCommands() {
	tm.RegisterCommand("info", tm.execInfo)
	tm.RegisterCommand("add", tm.execAdd)
	tm.RegisterCommand("contains", tm.execContains)
	tm.RegisterCommand("search", tm.execSearch)
	tm.RegisterCommand("startswith", tm.execStartsWith)
	tm.RegisterCommand("shutdown", tm.execShutdown)
}
