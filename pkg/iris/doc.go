// Package iris prepares Shipping Instructions for the IRIS logistics API
// and delivers them.
//
// Prepare runs the auto-fixer and the validator over a record and returns
// the corrected copy with a ValidationResult. The result's IsValid flag is
// what gates submission:
//
//	prepared := iris.Prepare(registry, record, time.Now())
//	if !prepared.Result.IsValid {
//	    return prepared.Result.Errors()
//	}
//
// Submission goes through a Submitter. Client posts to
// {IRIS_BASE_URL}/shipping-instructions with retries, exponential backoff
// and a circuit breaker; Simulator answers locally when no base URL is
// configured:
//
//	sub, err := iris.New(cfg, log)
//	if err != nil {
//	    return err
//	}
//	resp, err := sub.Submit(ctx, iris.NewSubmissionRequest(prepared.Data, "ops@acme.example", time.Now()))
//	switch {
//	case errors.Is(err, iris.ErrRejected):
//	    // resp.Errors lists what IRIS refused
//	case err != nil:
//	    // transport failure, timeout or open circuit
//	}
package iris
