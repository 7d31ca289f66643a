package export

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/dfmore/calviz/pkg/model"
	"github.com/dfmore/calviz/pkg/views"
)

// htmlView is the per-view payload embedded into the page.
type htmlView struct {
	ID          string             `json:"id"`
	Label       string             `json:"label"`
	Keys        []string           `json:"keys"`
	Labels      map[string]string  `json:"labels"`
	Colors      map[string]string  `json:"colors"`
	YMax        float64            `json:"yMax"`
	Stacked     bool               `json:"stacked"`
	LegendTitle string             `json:"legendTitle"`
	Stats       []htmlStat         `json:"stats"`
	Insights    []string           `json:"insights"`
	Months      []string           `json:"months"`
	Values      map[string]float64 `json:"values"` // "month/key" -> value
	Totals      map[string]float64 `json:"totals"` // month -> total
}

type htmlStat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var viewButtonLabels = map[views.ID]string{
	views.ViewCategories: "By Category",
	views.ViewTags:       "By Tag",
	views.ViewCount:      "Meeting Count",
}

// SaveHTML writes a self-contained interactive page: every view embedded as
// JSON, a switcher, animated bars, legend, stat cards and a hover tooltip.
// No network access is needed to open the result.
func SaveHTML(path, title string, data *model.Collection, reg *views.Registry) error {
	if data == nil || reg == nil {
		return fmt.Errorf("dataset and view registry are required")
	}
	if title == "" {
		title = data.Source
	}
	if title == "" {
		title = "Calendar Hours"
	}

	payload := make([]htmlView, 0, len(reg.IDs()))
	for _, id := range reg.IDs() {
		cfg, ok := reg.Get(id)
		if !ok {
			continue
		}
		payload = append(payload, buildHTMLView(cfg, data))
	}

	viewsJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal view payload: %w", err)
	}
	defaultJSON, err := json.Marshal(string(reg.Default()))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	doc := generateChartHTML(title, string(viewsJSON), string(defaultJSON))
	return os.WriteFile(path, []byte(doc), 0o644)
}

func buildHTMLView(cfg *views.Config, data *model.Collection) htmlView {
	ds := data.Dataset(cfg.Dataset)
	hv := htmlView{
		ID:          string(cfg.ID),
		Label:       viewButtonLabels[cfg.ID],
		YMax:        cfg.YMax,
		Stacked:     cfg.Stacked,
		LegendTitle: cfg.LegendTitle,
		Insights:    cfg.Insights,
		Months:      ds.MonthLabels(),
		Labels:      map[string]string{},
		Colors:      map[string]string{},
		Values:      map[string]float64{},
		Totals:      map[string]float64{},
	}
	if hv.Label == "" {
		hv.Label = string(cfg.ID)
	}
	if cfg.Stacked {
		hv.Keys = append(hv.Keys, cfg.OrderedKeys...)
	} else {
		hv.Keys = []string{"count"}
	}
	for _, key := range hv.Keys {
		hv.Labels[key] = cfg.LabelOf(key)
		c := cfg.ColorOf(key)
		hv.Colors[key] = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	for i := range cfg.Stats {
		hv.Stats = append(hv.Stats, htmlStat{Value: cfg.Stats[i].Value, Label: cfg.Stats[i].Label})
	}
	for _, month := range hv.Months {
		if cfg.Stacked {
			for _, key := range cfg.OrderedKeys {
				hv.Values[month+"/"+key] = ds.ValueFor(month, key)
			}
			hv.Totals[month] = ds.TotalFor(month)
		} else {
			rec, _ := ds.Record(month)
			hv.Values[month+"/count"] = float64(rec.Meetings)
			hv.Totals[month] = float64(rec.Meetings)
		}
	}
	return hv
}

// generateChartHTML renders the full page. Views arrive as a JSON array and
// are reconciled client-side by "series/month" key so switches animate rather
// than redraw.
func generateChartHTML(title, viewsJSON, defaultViewJSON string) string {
	timestamp := time.Now().Format("2006-01-02 15:04")
	safeTitle := html.EscapeString(title)
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s | cv</title>
<style>
  :root {
    --bg: #10131a;
    --panel: #181c26;
    --panel-border: #262c3a;
    --fg: #e6e9f0;
    --fg-muted: #8a93a6;
    --accent: #4e79a7;
    --radius: 10px;
  }
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
    background: var(--bg); color: var(--fg);
    padding: 1.5rem; font-size: 14px;
  }
  header { display: flex; justify-content: space-between; align-items: baseline; margin-bottom: 1rem; }
  h1 { font-size: 1.2rem; font-weight: 600; }
  .meta { color: var(--fg-muted); font-size: 0.75rem; }
  .switcher { display: flex; gap: 0.4rem; margin-bottom: 1rem; }
  .switcher button {
    font: inherit; color: var(--fg-muted); background: var(--panel);
    border: 1px solid var(--panel-border); border-radius: var(--radius);
    padding: 0.45rem 0.9rem; cursor: pointer;
  }
  .switcher button.active { color: var(--fg); border-color: var(--accent); background: #1d2430; }
  .stats { display: flex; gap: 0.75rem; margin-bottom: 1rem; }
  .stat-card {
    background: var(--panel); border: 1px solid var(--panel-border);
    border-radius: var(--radius); padding: 0.6rem 1rem; min-width: 140px;
  }
  .stat-card .value { font-size: 1.3rem; font-weight: 600; }
  .stat-card .label { color: var(--fg-muted); font-size: 0.72rem; text-transform: uppercase; letter-spacing: 0.04em; }
  .layout { display: flex; gap: 1rem; align-items: flex-start; }
  #chart {
    background: var(--panel); border: 1px solid var(--panel-border);
    border-radius: var(--radius); flex: 1; min-width: 0;
  }
  aside { width: 220px; flex-shrink: 0; }
  .panel {
    background: var(--panel); border: 1px solid var(--panel-border);
    border-radius: var(--radius); padding: 0.75rem 1rem; margin-bottom: 1rem;
  }
  .panel h2 { font-size: 0.72rem; text-transform: uppercase; letter-spacing: 0.04em; color: var(--fg-muted); margin-bottom: 0.5rem; }
  .legend-row { display: flex; align-items: center; gap: 0.5rem; padding: 0.15rem 0; font-size: 0.8rem; }
  .legend-swatch { width: 11px; height: 11px; border-radius: 3px; flex-shrink: 0; }
  .insights li { margin-left: 1rem; padding: 0.15rem 0; font-size: 0.8rem; color: var(--fg-muted); }
  #tooltip {
    position: fixed; display: none; pointer-events: none; z-index: 10;
    background: #0b0e14; border: 1px solid var(--accent); border-radius: 6px;
    padding: 0.35rem 0.6rem; font-size: 0.78rem; white-space: nowrap;
  }
  rect.seg { transition: x 0.4s ease-in-out, y 0.4s ease-in-out, width 0.4s ease-in-out, height 0.4s ease-in-out, opacity 0.4s ease-in-out; }
  .axis text, .months text { fill: var(--fg-muted); font-size: 10px; }
  .axis line { stroke: var(--panel-border); }
</style>
</head>
<body>
<header>
  <h1>%s</h1>
  <div class="meta">generated %s by cv</div>
</header>
<div class="switcher" id="switcher"></div>
<div class="stats" id="stats"></div>
<div class="layout">
  <svg id="chart" width="720" height="360"></svg>
  <aside>
    <div class="panel"><h2 id="legend-title">Legend</h2><div id="legend"></div></div>
    <div class="panel"><h2>Insights</h2><ul class="insights" id="insights"></ul></div>
  </aside>
</div>
<div id="tooltip"></div>
<script>
const VIEWS = %s;
const DEFAULT_VIEW = %s;

const svg = document.getElementById('chart');
const NS = 'http://www.w3.org/2000/svg';
const M = { left: 44, right: 16, top: 16, bottom: 32 };
const W = 720, H = 360;
const plotW = W - M.left - M.right, plotH = H - M.top - M.bottom;
const PAD = 0.2;

let active = null;
const nodes = new Map(); // key -> rect element

function view(id) { return VIEWS.find(v => v.id === id); }

function band(months) {
  const step = plotW / months.length;
  const bw = step * (1 - PAD);
  return { step, bw, pos: i => M.left + i * step + (step - bw) / 2 };
}

function yPos(v, yMax) { return M.top + plotH - (v / yMax) * plotH; }

function primitives(v) {
  const b = band(v.months);
  const prims = [];
  v.months.forEach((month, mi) => {
    let base = 0;
    v.keys.forEach(key => {
      const val = v.values[month + '/' + key] || 0;
      const y1 = base + val;
      prims.push({
        key: v.stacked ? key + '/' + month : month,
        x: b.pos(mi), w: b.bw,
        y: yPos(y1, v.yMax),
        h: (val / v.yMax) * plotH,
        fill: v.colors[key],
        month, series: key, value: val, total: v.totals[month],
      });
      base = y1;
    });
  });
  return prims;
}

function drawChrome(v) {
  svg.querySelectorAll('.axis, .months').forEach(el => el.remove());
  const axis = document.createElementNS(NS, 'g');
  axis.setAttribute('class', 'axis');
  [0, 0.5, 1].forEach(f => {
    const y = M.top + plotH - f * plotH;
    const line = document.createElementNS(NS, 'line');
    line.setAttribute('x1', M.left); line.setAttribute('x2', M.left + plotW);
    line.setAttribute('y1', y); line.setAttribute('y2', y);
    axis.appendChild(line);
    const t = document.createElementNS(NS, 'text');
    t.setAttribute('x', M.left - 6); t.setAttribute('y', y + 3);
    t.setAttribute('text-anchor', 'end');
    t.textContent = Math.round(f * v.yMax);
    axis.appendChild(t);
  });
  svg.appendChild(axis);
  const b = band(v.months);
  const months = document.createElementNS(NS, 'g');
  months.setAttribute('class', 'months');
  v.months.forEach((m, i) => {
    const t = document.createElementNS(NS, 'text');
    t.setAttribute('x', b.pos(i) + b.bw / 2);
    t.setAttribute('y', M.top + plotH + 16);
    t.setAttribute('text-anchor', 'middle');
    t.textContent = m;
    months.appendChild(t);
  });
  svg.appendChild(months);
}

function setRect(el, p) {
  el.setAttribute('x', p.x); el.setAttribute('width', p.w);
  el.setAttribute('y', p.y); el.setAttribute('height', Math.max(p.h, 0));
}

const tooltip = document.getElementById('tooltip');
function bindHover(el, p) {
  el.onmousemove = e => {
    const label = active.labels[p.series] || p.series;
    let text = p.month + ' · ' + label + ': ' + p.value;
    if (p.total !== p.value) text += ' of ' + p.total;
    tooltip.textContent = text;
    tooltip.style.display = 'block';
    tooltip.style.left = (e.clientX + 12) + 'px';
    tooltip.style.top = (e.clientY + 12) + 'px';
  };
  el.onmouseleave = () => { tooltip.style.display = 'none'; };
}

function render(v, initial) {
  drawChrome(v);
  const prims = primitives(v);
  const seen = new Set();
  prims.forEach((p, i) => {
    seen.add(p.key);
    let el = nodes.get(p.key);
    if (!el) {
      el = document.createElementNS(NS, 'rect');
      el.setAttribute('class', 'seg');
      setRect(el, { ...p, y: M.top + plotH, h: 0 });
      if (initial) el.style.transitionDelay = (p.month === v.months[0] ? 0 : v.months.indexOf(p.month) * 60) + 'ms';
      svg.appendChild(el);
      nodes.set(p.key, el);
      requestAnimationFrame(() => requestAnimationFrame(() => setRect(el, p)));
    } else {
      el.style.transitionDelay = '0ms';
      setRect(el, p);
    }
    el.setAttribute('fill', p.fill);
    bindHover(el, p);
  });
  for (const [key, el] of nodes) {
    if (seen.has(key)) continue;
    el.setAttribute('y', M.top + plotH);
    el.setAttribute('height', 0);
    nodes.delete(key);
    setTimeout(() => el.remove(), 450);
  }
}

function renderPanels(v) {
  document.getElementById('stats').innerHTML = v.stats.map(s =>
    '<div class="stat-card"><div class="value">' + s.value + '</div><div class="label">' + s.label + '</div></div>'
  ).join('');
  document.getElementById('legend-title').textContent = v.legendTitle || 'Legend';
  document.getElementById('legend').innerHTML = v.keys.map(k =>
    '<div class="legend-row"><span class="legend-swatch" style="background:' + v.colors[k] + '"></span>' + (v.labels[k] || k) + '</div>'
  ).join('');
  document.getElementById('insights').innerHTML = (v.insights || []).map(i => '<li>' + i + '</li>').join('');
}

function switchView(id) {
  const v = view(id);
  if (!v || (active && active.id === id)) return;
  active = v;
  document.querySelectorAll('.switcher button').forEach(b =>
    b.classList.toggle('active', b.dataset.view === id));
  render(v, false);
  renderPanels(v);
}

const switcher = document.getElementById('switcher');
VIEWS.forEach(v => {
  const btn = document.createElement('button');
  btn.textContent = v.label;
  btn.dataset.view = v.id;
  btn.onclick = () => switchView(v.id);
  switcher.appendChild(btn);
});

active = view(DEFAULT_VIEW) || VIEWS[0];
document.querySelector('.switcher button[data-view="' + active.id + '"]').classList.add('active');
render(active, true);
renderPanels(active);
</script>
</body>
</html>
`, safeTitle, safeTitle, timestamp, viewsJSON, defaultViewJSON)
}
