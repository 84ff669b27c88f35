package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lophoc/roster/core"
	"github.com/lophoc/roster/core/roster"
	logsvc "github.com/lophoc/roster/services/logger"
	"github.com/lophoc/roster/storage/database/inmem"
)

// asyncMailService delivers on a goroutine like the console and sendgrid
// services do, so these tests only see the report if importRoster actually
// waits for delivery before returning.
type asyncMailService struct {
	mu   sync.Mutex
	wg   sync.WaitGroup
	sent []core.EmailMessage
}

var _ core.EmailService = (*asyncMailService)(nil)

func (svc *asyncMailService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		msg := msg
		svc.wg.Add(1)
		go func() {
			defer svc.wg.Done()
			time.Sleep(10 * time.Millisecond)
			if err := msg.Render(); err != nil {
				return
			}
			if msg.HasRecipients() && (msg.HasContent() || msg.HasAttachments()) {
				svc.mu.Lock()
				svc.sent = append(svc.sent, *msg)
				svc.mu.Unlock()
			}
		}()
	}
}

func (svc *asyncMailService) Flush() {
	svc.wg.Wait()
}

func (svc *asyncMailService) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]core.EmailMessage, len(svc.sent))
	copy(out, svc.sent)
	return out
}

func setup(t *testing.T) (*commandLine, *inmem.AccountRepository, func() []core.EmailMessage) {
	t.Helper()

	conf := &core.Config{AppName: "Roster", Env: "TEST", TestMode: true, SchoolPrefix: "hy", ClassYear: 2024}
	repo := inmem.NewAccountRepository()
	mailSvc := &asyncMailService{}
	logger := logsvc.NewConsoleLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	cli := &commandLine{
		conf:    conf,
		svc:     roster.NewService(repo, mailSvc, conf, logger),
		mailSvc: mailSvc,
	}

	readRosterFunc = func(path string) ([]roster.Row, error) {
		switch path {
		case "roster.xlsx":
			return []roster.Row{
				{FullName: "Nguyễn Văn A", Grade: "1A"},
				{FullName: "Trần Thị B", Grade: "2B", BirthDate: "2015"},
			}, nil
		default:
			return nil, fmt.Errorf("opening %s: file does not exist", path)
		}
	}
	return cli, repo, mailSvc.SentMessages
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_run(t *testing.T) {
	cli, _, _ := setup(t)

	initDBFunc = func(conf *core.Config) error { return nil }

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "import: no file", args: []string{"import"}, wantErr: errHelp},
		{name: "import: unreadable file", args: []string{"import", "-file", "lol.xlsx"}, wantErrStr: "opening lol.xlsx: file does not exist"},
		{name: "import", args: []string{"import", "-file", "roster.xlsx"}},
		{name: "initdb", args: []string{"initdb"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_run_noPrefix(t *testing.T) {
	cli, _, _ := setup(t)
	cli.conf.SchoolPrefix = ""

	if err := cli.run([]string{"admin", "import", "-file", "roster.xlsx"}); err != errHelp {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errHelp)
	}
}

func Test_commandLine_importRoster(t *testing.T) {
	cli, repo, sentMessages := setup(t)
	outDir := t.TempDir()

	args := []string{"admin", "import", "-file", "roster.xlsx", "-out", outDir, "-email", "ops@example.test"}
	if err := cli.run(args); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}

	batches := repo.Batches()
	if len(batches) != 1 {
		t.Fatalf("saved %d batches, want 1", len(batches))
	}
	batch := batches[0]
	if len(batch.Students) != 2 {
		t.Errorf("got %d students, want 2", len(batch.Students))
	}
	if len(batch.Teachers) != 3 { // one per grade + the general account
		t.Errorf("got %d teachers, want 3", len(batch.Teachers))
	}
	if len(batch.Errors) != 0 {
		t.Errorf("got %d row errors, want 0", len(batch.Errors))
	}
	if uname := batch.Students[0].Username; uname != "hyvanan" {
		t.Errorf("Students[0].Username = %s, want hyvanan", uname)
	}

	for _, name := range []string{"students.csv", "teachers.csv"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	sent := sentMessages()
	if len(sent) != 1 {
		t.Fatalf("sent %d report emails, want 1", len(sent))
	}
	if got := sent[0].To[0].Address; got != "ops@example.test" {
		t.Errorf("report recipient = %s, want ops@example.test", got)
	}
	if len(sent[0].Attachments) != 2 {
		t.Errorf("report has %d attachments, want 2", len(sent[0].Attachments))
	}
}

func Test_commandLine_importRoster_dryRun(t *testing.T) {
	cli, repo, sentMessages := setup(t)

	if err := cli.run([]string{"admin", "import", "-file", "roster.xlsx", "-dry-run"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	if n := len(repo.Batches()); n != 0 {
		t.Errorf("saved %d batches, want 0", n)
	}
	if n := len(sentMessages()); n != 0 {
		t.Errorf("sent %d report emails, want 0", n)
	}
}
