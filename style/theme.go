package style

// Theme selects the CSS shipped with a rendered figure.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// CSS returns the stylesheet for the theme; unknown values get light,
// which matches the white-background maps of the source data.
func CSS(t Theme) string {
	if t == ThemeDark {
		return darkCSS
	}
	return lightCSS
}

const lightCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background: #ffffff;
    min-height: 100vh;
    color: #111827;
}
.container { max-width: 1500px; margin: 0 auto; padding: 20px; }
header { text-align: center; padding: 18px; background: #f3f4f6; border: 1px solid #d1d5db; border-radius: 8px; margin-bottom: 20px; }
header h1 { font-size: 22px; color: #111827; }
header p { color: #6b7280; margin-top: 5px; font-size: 14px; }
.stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: 15px; margin-bottom: 20px; }
.stat-card { background: #f9fafb; border: 1px solid #d1d5db; border-radius: 8px; padding: 15px; text-align: center; }
.stat-card .number { font-size: 1.8rem; font-weight: bold; color: #1d4ed8; }
.stat-card .label { color: #374151; margin-top: 4px; font-size: 13px; }
.controls { margin-bottom: 15px; }
.controls label { font-size: 14px; color: #374151; margin-right: 8px; }
.controls select { padding: 6px 10px; font-size: 14px; border: 1px solid #d1d5db; border-radius: 6px; background: #ffffff; color: #111827; }
.chart-box { background: #ffffff; border: 1px solid #d1d5db; border-radius: 8px; padding: 15px; margin-bottom: 20px; }
.chart { width: 100%; }
.note { color: #92400e; background: #fef3c7; border: 1px solid #fcd34d; border-radius: 6px; padding: 10px 14px; font-size: 13px; margin-bottom: 20px; }
footer { text-align: center; padding: 20px 0; color: #9ca3af; border-top: 1px solid #e5e7eb; font-size: 13px; }
`

const darkCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background: linear-gradient(135deg, #111827 0%, #1f2937 100%);
    min-height: 100vh;
    color: #e5e7eb;
}
.container { max-width: 1500px; margin: 0 auto; padding: 20px; }
header { text-align: center; padding: 18px; background: rgba(255,255,255,0.04); border: 1px solid #374151; border-radius: 8px; margin-bottom: 20px; }
header h1 { font-size: 22px; color: #f9fafb; }
header p { color: #9ca3af; margin-top: 5px; font-size: 14px; }
.stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: 15px; margin-bottom: 20px; }
.stat-card { background: rgba(255,255,255,0.04); border: 1px solid #374151; border-radius: 8px; padding: 15px; text-align: center; }
.stat-card .number { font-size: 1.8rem; font-weight: bold; color: #60a5fa; }
.stat-card .label { color: #9ca3af; margin-top: 4px; font-size: 13px; }
.controls { margin-bottom: 15px; }
.controls label { font-size: 14px; color: #d1d5db; margin-right: 8px; }
.controls select { padding: 6px 10px; font-size: 14px; border: 1px solid #4b5563; border-radius: 6px; background: #1f2937; color: #e5e7eb; }
.chart-box { background: rgba(255,255,255,0.04); border: 1px solid #374151; border-radius: 8px; padding: 15px; margin-bottom: 20px; }
.chart { width: 100%; }
.note { color: #fcd34d; background: rgba(252,211,77,0.08); border: 1px solid #92400e; border-radius: 6px; padding: 10px 14px; font-size: 13px; margin-bottom: 20px; }
footer { text-align: center; padding: 20px 0; color: #6b7280; border-top: 1px solid #374151; font-size: 13px; }
`
