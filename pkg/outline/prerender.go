package outline

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stateful/outline/pkg/styled"
)

// Prerender renders the text of every visible node concurrently. It is
// meant to run once, before the first layout pass of a large note. The
// tree must not be edited while it runs.
func (r *Root) Prerender(ctx context.Context) error {
	type job struct {
		node  *Node
		width float64
	}

	var jobs []job
	var collect func(n *Node, width float64)
	collect = func(n *Node, width float64) {
		if n.selfVisible && n.attributed == nil {
			jobs = append(jobs, job{node: n, width: width})
		}
		if !n.open {
			return
		}
		for _, c := range n.Children() {
			if c.visible {
				collect(c, width-n.childInset())
			}
		}
	}
	collect(r.Node, r.ctx.Width)

	cursor := r.cursor
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := -1
			if j.node == r.editing {
				c = cursor
			}
			s := r.ctx.Renderer.Render(j.node.text, j.node.placeholder, c)
			j.node.attributed = s
			j.node.sourceMap = styled.NewSourceMap(s, j.node.Len())
			j.node.width = j.width
			j.node.layout = r.ctx.Engine.Layout(s, j.width)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.ctx.Logger.Debug("prerendered nodes", zap.Int("count", len(jobs)))
	r.tree.invalidateLayout()
	r.flush()
	return nil
}
