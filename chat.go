package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"landing_page_studio/generator"
	"landing_page_studio/publisher"
	"landing_page_studio/studio"
)

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyles   = map[string]lipgloss.Style{
		"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
)

const chatHelp = `/new            start a new page
/theme <name>   set the theme (default, fintech, saas, ecommerce)
/show           print the current page
/pages          list saved pages
/open <id>      load a saved page
/delete <id>    delete a saved page
/export <dir>   write the current page as HTML and component
/quit           leave`

func chatAction(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	agent, err := buildAgent(e.cfg, e.logger)
	if err != nil {
		return err
	}
	st, err := studio.New(generator.NewSession(uuid.NewString(), agent), e.store, e.logger)
	if err != nil {
		return err
	}
	_ = st.Refresh(c.Context)

	out := os.Stdout
	fmt.Fprintln(out, headerStyle.Render("Landing Page Studio")+" "+dimStyle.Render("(type /help for commands)"))
	snap := st.Snapshot()
	for _, m := range snap.Messages {
		printMessage(out, m)
	}
	printNoticeList(out, snap.Notices)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, userStyle.Render("> "))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			quit, err := runChatCommand(c.Context, out, st, line)
			if err != nil {
				fmt.Fprintln(out, noticeStyles["error"].Render(err.Error()))
			}
			if quit {
				return nil
			}
			printNotices(out, st)
			continue
		}

		fmt.Fprintln(out, dimStyle.Render("thinking..."))
		turn, err := st.Submit(c.Context, line)
		if err != nil && turn.Assistant.ID == "" {
			fmt.Fprintln(out, noticeStyles["error"].Render(err.Error()))
			continue
		}
		printMessage(out, turn.Assistant)
		if turn.Extraction.Status == generator.PayloadValid {
			snap := st.Snapshot()
			printContent(out, snap.Content, snap.CurrentID, snap.Unsaved)
			printNoticeList(out, snap.Notices)
			continue
		}
		printNotices(out, st)
	}
}

func runChatCommand(ctx context.Context, out io.Writer, st *studio.Studio, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Fprintln(out, dimStyle.Render(chatHelp))
	case "/new":
		st.New()
		fmt.Fprintln(out, dimStyle.Render("Started a new page."))
	case "/theme":
		if err := st.SetTheme(ctx, arg); err != nil {
			return false, err
		}
		fmt.Fprintln(out, dimStyle.Render("Theme set to "+arg+"."))
	case "/show":
		snap := st.Snapshot()
		if snap.Content == nil {
			return false, studio.ErrNoContent
		}
		printContent(out, snap.Content, snap.CurrentID, snap.Unsaved)
		printNoticeList(out, snap.Notices)
	case "/pages":
		if err := st.Refresh(ctx); err != nil {
			return false, err
		}
		snap := st.Snapshot()
		if len(snap.Pages) == 0 {
			fmt.Fprintln(out, dimStyle.Render("No landing pages found"))
		}
		for _, r := range snap.Pages {
			marker := "  "
			if r.ID == snap.CurrentID {
				marker = "* "
			}
			fmt.Fprintf(out, "%s%s  %s %s\n", marker, r.ID, r.CompanyName, dimStyle.Render(string(r.Theme)))
		}
	case "/open":
		if err := st.Select(ctx, arg); err != nil {
			return false, err
		}
		snap := st.Snapshot()
		printContent(out, snap.Content, snap.CurrentID, snap.Unsaved)
	case "/delete":
		if err := st.Delete(ctx, arg); err != nil {
			return false, err
		}
		fmt.Fprintln(out, dimStyle.Render("Deleted "+arg+"."))
	case "/export":
		content, ok := st.Content()
		if !ok {
			return false, errors.New("no landing page to export")
		}
		if arg == "" {
			arg = "."
		}
		pub, err := publisher.New(arg, nil)
		if err != nil {
			return false, err
		}
		paths, err := pub.Write(content)
		if err != nil {
			return false, err
		}
		for _, p := range paths {
			fmt.Fprintln(out, dimStyle.Render("wrote "+p))
		}
	default:
		return false, fmt.Errorf("unknown command %s (try /help)", cmd)
	}
	return false, nil
}

func printMessage(out io.Writer, m generator.ConversationMessage) {
	if m.Text == "" {
		return
	}
	if m.Sender == generator.SenderUser {
		fmt.Fprintln(out, userStyle.Render("you: ")+m.Text)
		return
	}
	fmt.Fprintln(out, assistantStyle.Render(m.Text))
}

func printContent(out io.Writer, c *generator.ContentModel, id string, unsaved bool) {
	if c == nil {
		return
	}
	status := "saved as " + id
	if unsaved {
		status = "unsaved"
	}
	fmt.Fprintln(out, headerStyle.Render(c.CompanyName)+" "+dimStyle.Render(fmt.Sprintf("[%s] %s", c.Theme, status)))
	fmt.Fprintln(out, "  "+c.Tagline)
	fmt.Fprintln(out, "  "+c.HeroTitle)
	for _, f := range c.Features {
		fmt.Fprintln(out, "  - "+f.Title+": "+dimStyle.Render(f.Description))
	}
	fmt.Fprintln(out, "  CTA: "+c.CTA)
}

func printNotices(out io.Writer, st *studio.Studio) {
	printNoticeList(out, st.Snapshot().Notices)
}

func printNoticeList(out io.Writer, notices []studio.Notice) {
	for _, n := range notices {
		style, ok := noticeStyles[n.Level]
		if !ok {
			style = dimStyle
		}
		fmt.Fprintln(out, style.Render(n.Message))
	}
}

func jsonIndent(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
