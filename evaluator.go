package engine

// EvaluateRethrow is the Evaluator's rethrow entry point (§4.2): on
// failure it returns the error to the caller instead of converting it to
// a message. Used by Recalc, which discards the result either way.
func EvaluateRethrow(ctx *CallingContext, col, row int64) (Value, error) {
	return evaluateCell(ctx, col, row)
}

// EvaluateMessage is the Evaluator's message-returning entry point
// (§4.2): on failure it returns the error's first line as a string
// instead of propagating the error, matching the interactive-edit path
// where a raw error type isn't useful to the caller.
func EvaluateMessage(ctx *CallingContext, col, row int64) (Value, string) {
	v, err := evaluateCell(ctx, col, row)
	if err != nil {
		return Value{}, firstLine(err.Error())
	}
	return v, ""
}

// evaluateCell implements the nine-step protocol of §4.2 for a single
// cell, grounded on
// original_source/Forwards/src/Parser/SpreadSheet.cpp's two computeCell
// overloads collapsed into one Go function with an error return.
func evaluateCell(ctx *CallingContext, col, row int64) (Value, error) {
	cell := ctx.Sheet.GetCellAt(col, row)
	if cell == nil {
		return Nil(), nil
	}

	// Step 2: memoization check / cycle-breaker.
	if cell.HasPreviousValue() && cell.PreviousGeneration == ctx.Generation {
		return cell.PreviousValue, nil
	}

	// Step 2 continued: re-entry into a cell still on the stack. Mark
	// the cycle and return its last-known value without recursing.
	if cell.InEvaluation {
		ctx.Stack.MarkRecursedFrom(cell)
		return cell.PreviousValue, nil
	}

	// Step 3: LABEL fast path.
	if cell.Type == CellKindLabel && cell.Value == nil {
		cell.Value = newLabelExpression(cell.CurrentInput)
	}

	// Step 4: parse-on-demand. expr is what gets evaluated below; it is
	// only committed back onto the cell in step 5 when not mid
	// interactive edit.
	expr := cell.Value
	if expr == nil {
		if ctx.Parse == nil {
			return Nil(), NewEvalError(ErrorCodeValue, "no formula parser configured")
		}
		parsed, err := ctx.Parse(cell.CurrentInput)
		if err != nil || parsed == nil {
			line := ""
			if err != nil {
				line = firstLine(err.Error())
			}
			ctx.lastParseLog = line
			return Nil(), &ParseError{Line: line}
		}
		expr = parsed
		// Step 5: commit parse, unless mid interactive edit.
		if !ctx.InUserInput {
			cell.Value = expr
			cell.CurrentInput = ""
		}
	}

	// Step 6: push frame.
	ctx.pushCell(&CallFrame{Cell: cell, Col: col, Row: row})
	cell.InEvaluation = true
	cell.Recursed = false

	// Step 7: evaluate. Drop this cell's previously recorded precedents
	// first so a formula edit that narrows its references doesn't leave
	// stale edges behind for the rest of the pass (§4.6).
	ctx.Precedents.ClearPrecedentsOf(col, row)
	result, evalErr := expr.Evaluate(ctx)

	// Step 8: record outcome.
	cell.InEvaluation = false
	cell.PreviousGeneration = ctx.Generation
	if evalErr != nil {
		cell.setPreviousValue(Value{})
	} else {
		cell.setPreviousValue(result)
	}
	ctx.popCell()

	if evalErr != nil {
		return Value{}, evalErr
	}
	return result, nil
}
