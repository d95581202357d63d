package report

import (
	"strconv"

	"shici/internal/quiz"
)

// resultFields lists the labelled header fields of a results sheet.
func resultFields(result quiz.Result) [][2]string {
	return [][2]string{
		{"姓名", result.Player},
		{"IP 地址", result.ClientAddr},
		{"结束时间", result.FinishedAt.Format(quiz.EndTimeLayout)},
		{"得分", scoreText(result.Score, result.Total)},
		{"用时", quiz.FormatClock(result.Elapsed)},
	}
}

func scoreText(score, total int) string {
	return strconv.Itoa(score) + " / " + strconv.Itoa(total)
}
