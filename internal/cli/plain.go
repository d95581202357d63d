package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"shici/internal/netinfo"
	"shici/internal/quiz"
	"shici/internal/ui/play"
)

const plainHelp = "1-4/A-D 作答 · 回车 下一题 · n/p 下一题/上一题 · s 翻看出处 · f 交卷 · q 退出"

// addrWatch holds the outcome of a background address lookup.
type addrWatch struct {
	ch    chan string
	addr  string
	ready bool
}

// watchAddr starts lookup in the background.
func watchAddr(ctx context.Context, lookup play.AddrFunc) *addrWatch {
	watch := &addrWatch{ch: make(chan string, 1)}
	if lookup == nil {
		watch.addr = netinfo.Unavailable
		watch.ready = true
		return watch
	}
	go func() { watch.ch <- lookup(ctx) }()
	return watch
}

// current returns the address if it already arrived, or the pending label.
func (w *addrWatch) current() string {
	if !w.ready {
		select {
		case addr := <-w.ch:
			w.addr, w.ready = addr, true
		default:
			return play.PendingAddrText
		}
	}
	return w.addr
}

// wait blocks until the address arrives or ctx ends.
func (w *addrWatch) wait(ctx context.Context) string {
	if w.ready {
		return w.addr
	}
	select {
	case addr := <-w.ch:
		w.addr, w.ready = addr, true
		return addr
	case <-ctx.Done():
		return play.PendingAddrText
	}
}

// playPlain runs line-oriented quiz rounds on in and out until the player
// declines another round, quits or the input ends.
func playPlain(ctx context.Context, opts play.Options, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	player := strings.TrimSpace(opts.Player)
	if player == "" {
		name, err := promptRequired(reader, out, "你的名字", play.NameRequiredText)
		if err != nil {
			return err
		}
		player = name
	}
	addr := watchAddr(ctx, opts.Lookup)

	for {
		questions := quiz.Generate(opts.Poems, opts.Rand, opts.Quiz)
		session, err := quiz.NewSession(player, questions, opts.Now())
		if err != nil {
			return errors.New(play.NoQuestionsText)
		}
		if want := opts.Quiz.Questions; want > len(questions) {
			fmt.Fprintln(out, play.ShortfallText(len(questions), want))
		}
		fmt.Fprintln(out, plainHelp)

		session, quit, err := plainRound(ctx, reader, out, opts, session, addr)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		result := quiz.Summarize(session, addr.wait(ctx), opts.Now())
		fmt.Fprintln(out)
		writePlainResult(out, result)
		if opts.OnFinish != nil {
			if err := opts.OnFinish(result); err != nil {
				fmt.Fprintf(out, "保存成绩失败: %v\n", err)
			}
		}

		again, err := promptYesNo(reader, out, "再来一次？", false)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// plainRound plays one session. It reports quit when the player left without
// finishing. End of input finishes the session.
func plainRound(ctx context.Context, reader *bufio.Reader, out io.Writer, opts play.Options, session quiz.Session, addr *addrWatch) (quiz.Session, bool, error) {
	for !session.Finished() {
		if err := ctx.Err(); err != nil {
			return session, true, nil
		}
		writePlainQuestion(out, session, opts, addr.current())
		fmt.Fprint(out, "> ")
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return session, false, err
		}
		eof := err == io.EOF
		input := strings.TrimSpace(line)

		switch strings.ToLower(input) {
		case "":
			if !eof {
				session = session.Next(opts.Now())
			}
		case "n":
			session = session.Advance()
		case "p":
			session = session.Retreat()
		case "f":
			session = session.Finish(opts.Now())
		case "s":
			question := session.Current()
			if question.PoemIndex >= 0 && question.PoemIndex < len(opts.Poems) {
				fmt.Fprintf(out, "出处：%s\n", play.SourceText(opts.Poems[question.PoemIndex]))
			}
		case "q":
			return session, true, nil
		default:
			next, err := session.SubmitOption(play.OptionIndex(input))
			switch {
			case errors.Is(err, quiz.ErrAlreadyAnswered):
				fmt.Fprintln(out, "本题已作答。")
			case err != nil:
				fmt.Fprintf(out, "无法识别的输入 %q。%s\n", input, plainHelp)
			default:
				answered := next.Current()
				if answered.Correct {
					fmt.Fprintln(out, "✓ 答对了")
				} else {
					fmt.Fprintf(out, "✗ 正确答案：%s\n", answered.Answer)
				}
				session = next.Next(opts.Now())
			}
		}
		if eof {
			session = session.Finish(opts.Now())
		}
	}
	return session, false, nil
}

// writePlainQuestion prints the current question with its options.
func writePlainQuestion(out io.Writer, session quiz.Session, opts play.Options, addr string) {
	question := session.Current()
	fmt.Fprintf(out, "\n第 %d / %d 题 · %s | %s | 得分 %d | 用时 %s | IP %s\n",
		session.Position()+1, session.Len(), question.Direction.Hint(),
		session.Player, session.Score(), quiz.FormatClock(session.Elapsed(opts.Now())), addr)
	fmt.Fprintf(out, "  「%s」\n", question.Prompt)
	for i, option := range question.Options {
		mark := ""
		if question.Answered {
			switch option {
			case question.Answer:
				mark = "  ✓"
			case question.UserAnswer:
				mark = "  ✗"
			}
		}
		fmt.Fprintf(out, "  %s. %s%s\n", play.OptionLabel(i), option, mark)
	}
}

// writePlainResult prints the results sheet.
func writePlainResult(out io.Writer, result quiz.Result) {
	fmt.Fprintln(out, "答题结果")
	fmt.Fprintf(out, "姓名：%s\n", result.Player)
	fmt.Fprintf(out, "IP 地址：%s\n", result.ClientAddr)
	fmt.Fprintf(out, "结束时间：%s\n", result.FinishedAt.Format(quiz.EndTimeLayout))
	fmt.Fprintf(out, "得分：%d / %d\n", result.Score, result.Total)
	fmt.Fprintf(out, "用时：%s\n", quiz.FormatClock(result.Elapsed))
	if result.Review.Perfect {
		fmt.Fprintln(out, quiz.PerfectText)
		return
	}
	fmt.Fprintln(out, "错题回顾")
	fmt.Fprintln(out, reviewTable(result.Review))
}

// reviewTable lays out missed questions as a bordered text table.
func reviewTable(review quiz.Review) string {
	rows := make([][]string, 0, len(review.Items))
	for _, item := range review.Items {
		rows = append(rows, []string{strconv.Itoa(item.Index + 1), item.Prompt, item.Given(), item.Answer})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("题号", "题目", "你的答案", "正确答案").
		Rows(rows...).
		String()
}
