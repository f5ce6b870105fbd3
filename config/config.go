package config

import (
	"EH-Trie/pkg/system/sysPrint"
	"EH-Trie/pkg/utils/datastructure"
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"os"
)

const (
	defaultManagerAddr     = "127.0.0.1:5300"
	defaultConfigFilePath  = "config.yaml"
	defaultLogFile         = "trie.log"
	defaultQueryBufferSize = 1024
)

var (
	ConfigFilePath string
)

type TrieConfig struct {
	ManagerAddr     string   `yaml:"manager-addr"`             // trie manager 监听地址
	LogFile         string   `yaml:"log-file"`                 // 日志文件路径，为空则只输出到终端
	QueryBufferSize int      `yaml:"query-buffer-size"`        // 单条命令读取缓冲区大小
	InitWordList    []string `yaml:"init-word-list,omitempty"` // 启动时插入前缀树的单词
}

func init() {
	ConfigFilePath = defaultConfigFilePath
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		if args[i] == "-configPath" && i+1 < len(args) {
			ConfigFilePath = args[i+1]
			break
		}
	}
}

// DefaultConfig 返回默认配置
func DefaultConfig() *TrieConfig {
	return &TrieConfig{
		ManagerAddr:     defaultManagerAddr,
		LogFile:         defaultLogFile,
		QueryBufferSize: defaultQueryBufferSize,
		InitWordList:    nil,
	}
}

// NewTrieConfig 读取 ConfigFilePath，文件不存在时写入并使用默认配置
func NewTrieConfig() (*TrieConfig, error) {
	if _, err := os.Stat(ConfigFilePath); os.IsNotExist(err) {
		file, err := os.Create(ConfigFilePath)
		if err != nil {
			sysPrint.PrintlnSystemMsg("Failed to create config file: " + err.Error())
			return nil, err
		}
		defer file.Close()
		return createDefaultConfig(file)
	}
	return LoadConfig(ConfigFilePath)
}

// LoadConfig 从 path 读取配置，缺省字段使用默认值
func LoadConfig(path string) (*TrieConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		sysPrint.PrintlnSystemMsg("Failed to open config file: " + err.Error())
		return nil, err
	}
	defer file.Close()
	buf, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	tc := DefaultConfig()
	err = yaml.Unmarshal(buf, tc)
	if err != nil {
		return nil, err
	}
	if tc.QueryBufferSize <= 0 {
		tc.QueryBufferSize = defaultQueryBufferSize
	}
	if err = tc.Validate(); err != nil {
		return nil, err
	}
	return tc, nil
}

// Validate 检查 init-word-list 中的单词是否都只包含 a-z
func (tc *TrieConfig) Validate() error {
	for i, word := range tc.InitWordList {
		if err := datastructure.ValidateWord(word); err != nil {
			return fmt.Errorf("%w index %d %q: %v", sysPrint.ErrInvalidWordList, i, word, err)
		}
	}
	return nil
}

// BuildTrie 创建前缀树并插入 init-word-list
func (tc *TrieConfig) BuildTrie() (*datastructure.Trie, error) {
	trie := datastructure.NewTrie()
	for _, word := range tc.InitWordList {
		if _, err := trie.Add(word); err != nil {
			return nil, err
		}
	}
	return trie, nil
}

func createDefaultConfig(w io.Writer) (*TrieConfig, error) {
	tc := DefaultConfig()
	yamlData, err := yaml.Marshal(tc)
	if err != nil {
		return nil, err
	}
	_, err = w.Write(yamlData)
	if err != nil {
		return nil, err
	}
	return tc, nil
}
