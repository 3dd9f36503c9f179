// Package flow sequences a device code login: request a code, let the user
// sign in out-of-band, then redeem the code once.
//
// The manual pause stands in for the RFC 8628 polling loop. A caller wanting
// polling should wrap DeviceFlow.ExchangeToken in a loop that honours the
// interval and expiry of the DeviceCode and retries on authorization_pending.
package flow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/waabox/snatch/internal/domain"
)

// Orchestrator drives one login from AwaitingDeviceCode to Done or Failed.
// It is single use.
type Orchestrator struct {
	flow     domain.DeviceFlow
	printer  domain.Printer
	gate     domain.Gate
	reporter domain.Reporter
	log      *zap.Logger
	stage    domain.Stage
}

// New creates an Orchestrator. A nil log disables logging.
func New(flow domain.DeviceFlow, printer domain.Printer, gate domain.Gate, reporter domain.Reporter, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		flow:     flow,
		printer:  printer,
		gate:     gate,
		reporter: reporter,
		log:      log,
		stage:    domain.StageAwaitingDeviceCode,
	}
}

// Stage returns the current stage.
func (o *Orchestrator) Stage() domain.Stage {
	return o.stage
}

// Run performs the login. On error the stage is Failed and nothing is reported.
func (o *Orchestrator) Run(ctx context.Context) (domain.Token, error) {
	if o.stage != domain.StageAwaitingDeviceCode {
		return domain.Token{}, fmt.Errorf("login already %s", o.stage)
	}

	o.printer.Println(domain.ToneRule, "")
	o.printer.Println(domain.ToneOK, "Retrieving Azure Tokens to be used with AzureHound")
	o.printer.Println(domain.ToneRule, "")

	code, err := o.flow.RequestCode(ctx)
	if err != nil {
		return domain.Token{}, o.fail(err)
	}
	o.advance(domain.StageAwaitingUserAuth)

	o.printer.Println(domain.ToneOK, fmt.Sprintf("Navigate to %s to authenticate yourself.",
		o.printer.Highlight(domain.ToneLink, code.VerificationURL)))
	o.printer.Println(domain.ToneOK, "When asked, provide the following code: "+
		o.printer.Highlight(domain.ToneCode, code.UserCode))

	prompt := o.printer.Highlight(domain.ToneOK, "[+]") + " Once done, press any key to continue... "
	if err := o.gate.Wait(ctx, prompt); err != nil {
		return domain.Token{}, o.fail(fmt.Errorf("waiting for sign-in: %w", err))
	}
	o.advance(domain.StageExchanging)

	tok, err := o.flow.ExchangeToken(ctx, code.DeviceCode)
	if err != nil {
		return domain.Token{}, o.fail(err)
	}
	o.advance(domain.StageDone)

	if err := o.reporter.Report(tok); err != nil {
		return tok, fmt.Errorf("reporting tokens: %w", err)
	}
	return tok, nil
}

func (o *Orchestrator) advance(to domain.Stage) {
	if !o.stage.CanTransition(to) {
		panic(fmt.Sprintf("flow: invalid transition %s -> %s", o.stage, to))
	}
	o.log.Debug("stage transition", zap.String("from", string(o.stage)), zap.String("to", string(to)))
	o.stage = to
}

func (o *Orchestrator) fail(err error) error {
	o.log.Debug("login failed", zap.String("stage", string(o.stage)), zap.Error(err))
	o.advance(domain.StageFailed)
	return err
}
