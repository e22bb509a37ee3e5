package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CLI 是 kwfind 的 kong 命令行；Dir、Keyword 为空时从 stdin 询问。
type CLI struct {
	Dir      string `name:"dir" short:"d" help:"検索対象ディレクトリ"`
	Keyword  string `name:"keyword" short:"k" help:"検索キーワード"`
	Output   string `name:"output" short:"o" help:"出力するExcelファイル（既定: search_result.xlsx）"`
	Workers  int    `name:"workers" help:"テキスト解析の並列数（0 = CPUコア数）"`
	Config   string `name:"config" help:"YAML設定ファイル"`
	JSONL    bool   `name:"jsonl" help:"Excelの代わりにJSON Linesを標準出力へ書き出す"`
	Open     bool   `name:"open" help:"出力したExcelファイルを開く"`
	LogLevel string `name:"log-level" help:"ログレベル（debug, info, warn, error）"`
}

const (
	promptDir     = "検索対象ディレクトリを入力してください（例: ./file）: "
	promptKeyword = "検索キーワードを入力してください: "
)

// prompter 读取交互输入；stdin 关闭后返回空串，由校验负责报错。
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	if in == nil {
		in = strings.NewReader("")
	}
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(label string) string {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return ""
	}
	return strings.TrimSpace(line)
}

// fill 只询问缺失的字段，已由参数给出的值保持不变。
func (c *CLI) fill(p *prompter) {
	c.Dir = strings.TrimSpace(c.Dir)
	c.Keyword = strings.TrimSpace(c.Keyword)
	if c.Dir == "" {
		c.Dir = p.ask(promptDir)
	}
	if c.Keyword == "" {
		c.Keyword = p.ask(promptKeyword)
	}
}

func isHelp(args []string) bool {
	for _, a := range args {
		switch a {
		case "-h", "--help":
			return true
		}
	}
	return false
}
