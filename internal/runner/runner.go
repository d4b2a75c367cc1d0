// Package runner launches a matched job, captures its combined
// stdout/stderr, and mails any non-empty capture to the owning user.
//
// The original daemon forks twice per job: a monitor process that waits on
// the command and funnels its output to mailx, and the command process
// itself. Go has no fork; the equivalent shape here is a goroutine that
// plays the monitor's role (reads the command's combined output, waits for
// it, then mails) launched fire-and-forget so the main loop never blocks
// on a running job, exactly as the monitor process let the parent crond
// continue immediately (spec §4.6, §5).
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/somnisoft/crond/internal/clog"
	"github.com/somnisoft/crond/internal/cronerr"
)

// maxSubjectLen mirrors the original's CROND_MAX_SUBJECT_LEN: the mail
// subject is allowed to truncate past this many content bytes (plus the
// source's NUL terminator, which Go strings don't carry) rather than fail.
const maxSubjectLen = 79

// Mailer sends a message body to recipient with the given subject. The
// production Mailer shells out to an external mail submission program;
// tests substitute a fake.
type Mailer interface {
	Mail(ctx context.Context, recipient, subject string, body []byte) error
}

// Config carries everything Run needs that is not specific to one job:
// the shell used to execute commands, the mail recipient, and the mailer.
type Config struct {
	Shell     string
	Recipient string
	Mailer    Mailer
}

// Job is the minimal per-job data Run needs: a shell command line and an
// optional stdin payload.
type Job struct {
	Command      string
	StdinPayload []byte
}

// Run launches job.Command under cfg.Shell with job.StdinPayload fed to
// its standard input, capturing combined stdout+stderr. It returns
// immediately after starting the command and leaves monitor, in its own
// goroutine, to wait for completion and mail any non-empty capture,
// mirroring the fork-twice pipeline without blocking the caller.
func Run(ctx context.Context, cfg Config, job Job) {
	clog.WithJob(job.Command).Debug("running job")

	cmd := exec.CommandContext(ctx, cfg.Shell, "-c", job.Command)
	if len(job.StdinPayload) > 0 {
		cmd.Stdin = bytes.NewReader(job.StdinPayload)
	}

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Start(); err != nil {
		clog.WithJob(job.Command).Warn("failed to execute job", "error", err)
		return
	}

	go monitor(ctx, cfg, job, cmd, &output)
}

// monitor waits for cmd to exit and, if it produced any output, mails it.
// It plays the role of the original jobmon process.
func monitor(ctx context.Context, cfg Config, job Job, cmd *exec.Cmd, output *bytes.Buffer) {
	logger := clog.WithPID(cmd.Process.Pid)
	if err := cmd.Wait(); err != nil {
		logger.Debug("job exited non-zero", "command", job.Command, "error", err)
	}

	if output.Len() == 0 {
		return
	}

	subject := mailSubject(cfg.Recipient, job.Command)
	if err := cfg.Mailer.Mail(ctx, cfg.Recipient, subject, output.Bytes()); err != nil {
		logger.Warn("failed to mail job output", "command", job.Command, "error", err)
	}
}

// mailSubject builds "Cron <user> command", truncated to maxSubjectLen
// bytes: the subject is allowed to truncate, never to fail, matching the
// original's snprintf-into-fixed-buffer behavior.
func mailSubject(recipient, command string) string {
	subject := fmt.Sprintf("Cron <%s> %s", recipient, command)
	if len(subject) <= maxSubjectLen {
		return subject
	}
	return subject[:maxSubjectLen]
}

// ExternalMailer shells out to an external mail submission program,
// resolved via PATH, to deliver job output: it runs
// "<program> -s <subject> <recipient>" with the captured body piped to its
// stdin.
type ExternalMailer struct {
	// Program is the mail submission binary to exec, e.g. "mail" or
	// "mailx". Defaults to "mail" when empty.
	Program string
}

// Mail implements Mailer by running Program with "-s subject recipient"
// and body on stdin.
func (m ExternalMailer) Mail(ctx context.Context, recipient, subject string, body []byte) error {
	program := m.Program
	if program == "" {
		program = "mail"
	}

	cmd := exec.CommandContext(ctx, program, "-s", subject, recipient)
	cmd.Stdin = bytes.NewReader(body)
	if err := cmd.Run(); err != nil {
		return cronerr.Wrap(err, cronerr.KindChild, "mail")
	}
	return nil
}
