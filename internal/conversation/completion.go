package conversation

import "context"

// Finished reports whether the bot is done generating. Only the stop control
// is consulted: present without a disabled attribute means still streaming.
func (p *Parser) Finished(ctx context.Context) (bool, error) {
	doc, err := p.src.Document(ctx)
	if err != nil {
		return false, err
	}
	stop := doc.Find(p.sel.StopButton).First()
	if stop.Length() == 0 {
		return true, nil
	}
	if _, disabled := stop.Attr("disabled"); disabled {
		return true, nil
	}
	return false, nil
}
