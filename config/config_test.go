package config

import (
	"EH-Trie/pkg/system/sysPrint"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewTrieConfigCreatesDefault(t *testing.T) {
	oldPath := ConfigFilePath
	defer func() {
		ConfigFilePath = oldPath
	}()
	ConfigFilePath = filepath.Join(t.TempDir(), "config.yaml")

	tc, err := NewTrieConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tc, DefaultConfig()) {
		t.Errorf("expect:%+v, actual:%+v", DefaultConfig(), tc)
	}
	data, err := os.ReadFile(ConfigFilePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "manager-addr:") || !strings.Contains(string(data), defaultManagerAddr) {
		t.Errorf("default config is not written to disk, file content:\n%s", string(data))
	}

	// 第二次读取已存在的文件
	tc2, err := NewTrieConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tc, tc2) {
		t.Errorf("expect:%+v, actual:%+v", tc, tc2)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trie.yaml")
	content := `manager-addr: 127.0.0.1:6300
log-file: ""
init-word-list:
  - cat
  - car
  - card
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	tc, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if tc.ManagerAddr != "127.0.0.1:6300" {
		t.Errorf("expect:%s, actual:%s", "127.0.0.1:6300", tc.ManagerAddr)
	}
	if tc.LogFile != "" {
		t.Errorf("expect empty log file, actual:%s", tc.LogFile)
	}
	if tc.QueryBufferSize != defaultQueryBufferSize {
		t.Errorf("missing query-buffer-size should fall back to default, expect:%d, actual:%d", defaultQueryBufferSize, tc.QueryBufferSize)
	}

	trie, err := tc.BuildTrie()
	if err != nil {
		t.Fatal(err)
	}
	words, _ := trie.Search("ca")
	expect := []string{"car", "card", "cat"}
	if !reflect.DeepEqual(words, expect) {
		t.Errorf("expect:%v, actual:%v", expect, words)
	}
}

func TestLoadConfigInvalidWord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trie.yaml")
	content := `init-word-list:
  - cat
  - Dog
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path)
	if !errors.Is(err, sysPrint.ErrInvalidWordList) {
		t.Errorf("expect ErrInvalidWordList, actual:%v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("expect not exist error, actual:%v", err)
	}
}
