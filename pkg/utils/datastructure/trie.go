package datastructure

import (
	"EH-Trie/pkg/system/sysPrint"
	"fmt"
)

// alphabetSize 字母表大小，仅支持小写字母 a-z
const alphabetSize = 26

// TrieNode 前缀树节点，children 按 letter - 'a' 下标索引
type TrieNode struct {
	children    [alphabetSize]*TrieNode
	isEndOfWord bool
}

// Trie 前缀树
// 非并发安全：Add 需要调用方独占访问，没有 Add 进行时 Contains/Search 可以并发读
type Trie struct {
	root      *TrieNode
	wordCount int
	nodeCount int
}

func NewTrie() *Trie {
	return &Trie{
		root:      &TrieNode{},
		wordCount: 0,
		nodeCount: 1,
	}
}

// ValidateWord 校验 word 中每个字符都在 a-z 范围内
// 返回的错误包装了 sysPrint.ErrInvalidCharacter，并给出非法字符及其字节位置
func ValidateWord(word string) error {
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return fmt.Errorf("%w (got %q at position %d)", sysPrint.ErrInvalidCharacter, ch, i)
		}
	}
	return nil
}

// Add 插入 word，返回 word 是否为新记录的完整单词
// 重复插入返回 false，树结构不变
func (t *Trie) Add(word string) (bool, error) {
	// 先校验再修改，非法输入不会留下半截路径
	if err := ValidateWord(word); err != nil {
		return false, err
	}
	node := t.root
	for i := 0; i < len(word); i++ {
		idx := word[i] - 'a'
		if node.children[idx] == nil {
			node.children[idx] = &TrieNode{}
			t.nodeCount++
		}
		node = node.children[idx]
	}
	if node.isEndOfWord {
		return false, nil
	}
	node.isEndOfWord = true
	t.wordCount++
	return true, nil
}

// AddWords 批量插入，返回每个单词是否为新记录的完整单词
// 先校验全部单词，有任意非法单词时一个都不插入
func (t *Trie) AddWords(words ...string) ([]bool, error) {
	for i, word := range words {
		if err := ValidateWord(word); err != nil {
			return nil, fmt.Errorf("%w (word %d)", err, i)
		}
	}
	results := make([]bool, len(words))
	for i, word := range words {
		// 已校验，Add 不会失败
		results[i], _ = t.Add(word)
	}
	return results, nil
}

// walk 沿 word 从根节点向下查找，不创建节点，路径不存在返回 nil
func (t *Trie) walk(word string) (*TrieNode, error) {
	if err := ValidateWord(word); err != nil {
		return nil, err
	}
	node := t.root
	for i := 0; i < len(word); i++ {
		node = node.children[word[i]-'a']
		if node == nil {
			return nil, nil
		}
	}
	return node, nil
}

// Contains 查询 word 是否为已插入的完整单词
func (t *Trie) Contains(word string) (bool, error) {
	node, err := t.walk(word)
	if err != nil || node == nil {
		return false, err
	}
	return node.isEndOfWord, nil
}

// StartsWith 查询是否存在以 prefix 开头的单词
func (t *Trie) StartsWith(prefix string) (bool, error) {
	node, err := t.walk(prefix)
	if err != nil || node == nil {
		return false, err
	}
	if node.isEndOfWord {
		return true, nil
	}
	// 非根节点一定位于某个单词的路径上，根节点需要看是否有子节点
	return node != t.root || t.wordCount > 0, nil
}

// Search 返回所有以 prefix 开头的单词，按字典序升序排列
func (t *Trie) Search(prefix string) ([]string, error) {
	node, err := t.walk(prefix)
	if err != nil {
		return nil, err
	}
	result := make([]string, 0)
	if node == nil {
		return result, nil
	}
	if node.isEndOfWord {
		result = append(result, prefix)
	}
	buf := make([]byte, len(prefix), len(prefix)+16)
	copy(buf, prefix)
	return collect(node, buf, result), nil
}

// collect 按 a-z 顺序深度优先遍历 node 的子树
// 子节点本身的单词先于其子树中更长的单词加入结果
func collect(node *TrieNode, path []byte, result []string) []string {
	for i := 0; i < alphabetSize; i++ {
		child := node.children[i]
		if child == nil {
			continue
		}
		path = append(path, byte('a'+i))
		if child.isEndOfWord {
			result = append(result, string(path))
		}
		result = collect(child, path, result)
		path = path[:len(path)-1]
	}
	return result
}

// Len 返回已插入的不同单词数
func (t *Trie) Len() int {
	return t.wordCount
}

// NodeCount 返回已分配的节点数，包含根节点
func (t *Trie) NodeCount() int {
	return t.nodeCount
}
