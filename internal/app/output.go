package app

import (
	"fmt"
	"io"
	"strings"

	"kwfind/internal/report"
	"kwfind/internal/search"
)

var rule = strings.Repeat("=", 50)

func printBanner(w io.Writer, dir, keyword string) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "検索設定")
	fmt.Fprintf(w, "ディレクトリ: %s\n", dir)
	fmt.Fprintf(w, "キーワード: %s\n", keyword)
	fmt.Fprintf(w, "%s\n\n", rule)
}

func printSummary(w io.Writer, res *search.Result) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "検索結果サマリー")
	fmt.Fprintf(w, "実行ID: %s\n", res.RunID)
	fmt.Fprintf(w, "ディレクトリ: %s\n", res.Root)
	fmt.Fprintf(w, "検索対象ファイル数: %d件\n", res.TextFiles+res.ImageFiles+res.OtherFiles)
	fmt.Fprintf(w, "テキストファイル: %d件, 画像ファイル: %d件, その他: %d件\n", res.TextFiles, res.ImageFiles, res.OtherFiles)
	fmt.Fprintf(w, "処理時間: %.2f秒\n", res.Elapsed.Seconds())
	fmt.Fprintf(w, "ヒット件数: %d件\n", res.Hits())
	fmt.Fprintf(w, "%s\n\n", rule)
}

// writeReport 在 JSONL 模式下只向 stdout 输出结果行（与旧 worker 模式一致），
// 否则写 Excel 文件并返回其路径。
func writeReport(res *search.Result, jsonl bool, output string, stdout, ui io.Writer) (string, error) {
	if jsonl {
		return "", report.WriteJSONL(stdout, res)
	}
	if err := report.WriteXLSX(output, res); err != nil {
		return "", err
	}
	fmt.Fprintf(ui, "エクセル出力完了: %s\n", output)
	return output, nil
}
