package main

import (
	"EH-Trie/config"
	"EH-Trie/pkg/manager"
	"EH-Trie/pkg/system/sysPrint"
	"fmt"
	"strconv"
)

func main() {
	c, err := config.NewTrieConfig()
	if err != nil {
		sysPrint.PrintlnAndLogWriteFatalMsg(err.Error())
	}
	if err = sysPrint.OpenLogFile(c.LogFile); err != nil {
		sysPrint.PrintlnErrorMsg("Failed to open log file: " + err.Error())
	}
	defer sysPrint.LogClose()

	trie, err := c.BuildTrie()
	if err != nil {
		sysPrint.PrintlnAndLogWriteFatalMsg(err.Error())
	}
	fmt.Print(`
 ______     __  __     ______   ______     __     ______
/\  ___\   /\ \_\ \   /\__  _\ /\  == \   /\ \   /\  ___\
\ \  __\   \ \  __ \  \/_/\ \/ \ \  __<   \ \ \  \ \  __\
 \ \_____\  \ \_\ \_\    \ \_\  \ \_\ \_\  \ \_\  \ \_____\
  \/_____/   \/_/\/_/     \/_/   \/_/ /_/   \/_/   \/_____/
`, "\n")
	sysPrint.PrintlnAndLogWriteSystemMsg("loaded " + strconv.Itoa(trie.Len()) + " words from init-word-list.")

	tm := manager.NewTrieManager(c, trie)
	if err = tm.Serve(); err != nil {
		sysPrint.PrintlnAndLogWriteFatalMsg(err.Error())
	}
	sysPrint.PrintlnSystemMsg("EH-Trie is now ready to exit, bye bye...")
}
