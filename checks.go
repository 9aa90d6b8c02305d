package formz

import "context"

// TagChecker builds a Checker from go-playground/validator tag expressions
// keyed by field identifier, for hosts that do not need custom callback
// logic:
//
//	check := formz.TagChecker(map[string]string{
//	    "email": "omitempty,email",
//	    "port":  "omitempty,numeric",
//	})
//
// Fields without an entry always pass. Tag violations are folded into the
// result's error text. Required-ness is not expressed here; the Sentinel's
// short circuit handles it before any checker runs.
func TagChecker(tags map[string]string) Checker {
	return func(ctx context.Context, target Snapshot, pool []Snapshot) (Result, error) {
		result := Result{Key: target.ID, Value: target.Content}

		tag, ok := tags[target.ID]
		if !ok {
			return result, nil
		}

		if err := validate.VarCtx(ctx, target.Content, tag); err != nil {
			result.Error = err.Error()
		}
		return result, nil
	}
}
