// Package generator renders the dashboard page. The whole UI lives in
// one html/template: Leaflet from CDN draws the choropleth, and a small
// amount of inline JS refetches the value map whenever the season or
// time-of-day selector changes.
package generator

import (
	"encoding/json"
	"html/template"
	"io"

	"github.com/paulmach/orb/geojson"

	"urban-heatmap/internal/dataset"
)

// PageData is everything the dashboard template needs. The boundary
// GeoJSON is inlined into the page so the map paints on first load
// without an extra round trip.
type PageData struct {
	Title      string
	IDProperty string
	Selection  dataset.Selection
	Seasons    []dataset.Season
	Times      []dataset.TimeOfDay
	Countries  []string
	Legend     []dataset.LegendGrade
	GeoJSON    *geojson.FeatureCollection
}

// NewPageData assembles the template payload for a built join index.
func NewPageData(idx *dataset.JoinIndex) PageData {
	return PageData{
		Title:      "Urban Heatmap",
		IDProperty: dataset.IdentifierProperty,
		Selection:  dataset.DefaultSelection(),
		Seasons:    dataset.Seasons,
		Times:      dataset.TimesOfDay,
		Countries:  idx.Countries(),
		Legend:     dataset.LegendGrades,
		GeoJSON:    idx.FeatureCollection(),
	}
}

// RenderDashboard writes the dashboard HTML for the given page data.
func RenderDashboard(w io.Writer, data PageData) error {
	return dashboardTmpl.Execute(w, data)
}

func toJSON(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"toJSON": toJSON,
}).Parse(`
    <!DOCTYPE html>
    <html lang="en">
    <head>
       <meta charset="UTF-8"/>
       <title>{{ .Title }}</title>
       <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
       <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
       <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>
       <style>
          :root {
             --bg-color: #121212;
             --text-color: #e0e0e0;
             --card-bg: #1e1e1e;
             --card-border: #333;
             --header-bg: #2d2d45;
             --header-border: #444466;
             --tab-active-bg: #3d3d5c;
          }
          body {
             font-family: Arial, sans-serif;
             max-width: 1200px;
             margin: 0 auto;
             padding: 20px;
             background-color: var(--bg-color);
             color: var(--text-color);
          }
          html { background-color: #121212; }
          h1, h2, h4 { color: var(--text-color); }
          #map {
             height: 600px; width: 100%;
             border: 2px solid var(--card-border);
             border-radius: 5px; margin-top: 20px;
          }
          .controls {
             display: flex; gap: 15px; align-items: center;
             background-color: var(--card-bg); padding: 12px;
             border: 1px solid var(--card-border); border-radius: 5px;
             margin-top: 15px;
          }
          .controls select {
             background-color: var(--header-bg); color: var(--text-color);
             border: 1px solid var(--header-border); border-radius: 4px;
             padding: 6px 10px;
          }
          .tabs { display: flex; gap: 10px; margin-top: 15px; }
          .tab {
             padding: 8px 16px; cursor: pointer; border-radius: 5px 5px 0 0;
             background-color: var(--card-bg); border: 1px solid var(--card-border);
          }
          .tab.active { background-color: var(--tab-active-bg); }
          .panel { display: none; }
          .panel.active { display: block; }
          .map-legend {
             background: white; color: #555; padding: 10px;
             line-height: 18px; border-radius: 5px;
             box-shadow: 0 0 15px rgba(0,0,0,0.2); font-family: sans-serif;
          }
          .map-legend i {
             display: inline-block; width: 18px; height: 18px;
             float: left; margin-right: 8px; opacity: 0.8;
          }
          .info-box {
             background-color: var(--card-bg); border: 1px solid var(--card-border);
             padding: 10px; border-radius: 5px; margin-top: 10px; font-size: 0.9em;
          }
          #scatter-wrap {
             background-color: var(--card-bg); border: 1px solid var(--card-border);
             border-radius: 5px; padding: 20px; margin-top: 20px;
          }
          #scatter-canvas { max-height: 500px; }
          .modal-backdrop {
             position: fixed; inset: 0; background: rgba(0,0,0,0.6);
             display: flex; align-items: center; justify-content: center; z-index: 2000;
          }
          .modal-card {
             background-color: var(--card-bg); border: 1px solid var(--header-border);
             border-radius: 8px; max-width: 640px; padding: 25px;
          }
          .modal-card a { color: #add8e6; }
          .modal-card button {
             background-color: var(--header-bg); color: var(--text-color);
             border: 1px solid var(--header-border); border-radius: 4px;
             padding: 8px 16px; cursor: pointer; margin-top: 15px;
          }
       </style>
    </head>
    <body>
       <h1>🌍 {{ .Title }} <span id="info-icon" style="cursor:pointer" title="About">ℹ️</span></h1>

       <div class="tabs">
          <div class="tab active" data-panel="map-panel">🗺️ Urban Heatmap</div>
          <div class="tab" data-panel="scatter-panel">📊 ΔT Scatter Plot</div>
       </div>

       <div id="map-panel" class="panel active">
          <div class="controls">
             <label for="season">Season:</label>
             <select id="season">
                {{ range .Seasons }}
                   <option value="{{ . }}" {{ if eq . $.Selection.Season }}selected{{ end }}>{{ .Title }}</option>
                {{ end }}
             </select>
             <label for="time">Time of day:</label>
             <select id="time">
                {{ range .Times }}
                   <option value="{{ . }}" {{ if eq . $.Selection.Time }}selected{{ end }}>{{ .Title }}</option>
                {{ end }}
             </select>
          </div>
          <div id="map"></div>
          <div class="info-box"><b>Click a polygon to see its ΔT value.</b></div>
       </div>

       <div id="scatter-panel" class="panel">
          <div class="controls">
             <label for="country">Country / urban area:</label>
             <select id="country">
                {{ range .Countries }}
                   <option value="{{ . }}">{{ . }}</option>
                {{ end }}
             </select>
          </div>
          <div id="scatter-wrap">
             <h2>Average ΔT: Day vs Night by Season</h2>
             <canvas id="scatter-canvas"></canvas>
          </div>
       </div>

       <div id="about-modal" class="modal-backdrop" style="display:none">
          <div class="modal-card">
             <h2>🌍 Urban Heatmap Application</h2>
             <p>Exploring the difference of surface temperature anomalies (ΔT)
                for every season (winter, spring, summer, fall), day and night,
                in urban areas around the world.</p>
             <p>The 🗺️ tab shows the choropleth map; click a polygon for its ΔT
                value. The 📊 tab plots the day (x) vs night (y) anomalies per
                season for one urban area.</p>
             <h4>📖 Reference Study</h4>
             <p>Susanne A Benz et al 2021 Environ. Res. Lett. 16 064093<br>
                <a href="https://doi.org/10.1088/1748-9326/ac0661">https://doi.org/10.1088/1748-9326/ac0661</a></p>
             <h4>📧 Contact</h4>
             <p><a href="mailto:susanne.benz@kit.edu">Susanne A Benz</a>,
                <a href="mailto:raniadesenaldo@gmail.com">Rania A Desenaldo</a></p>
             <button id="modal-close">Close</button>
          </div>
       </div>

       <script>
          var idProperty = {{ toJSON .IDProperty }};
          var boundaries = {{ toJSON .GeoJSON }};
          var legendGrades = {{ toJSON .Legend }};

          var map = L.map('map').setView([49.3, 8.45], 4);
          L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
             maxZoom: 19,
             attribution: '&copy; OpenStreetMap contributors'
          }).addTo(map);

          // Latest projection received from the server: id -> {value, color}.
          var currentValues = {};

          function styleFeature(feature) {
             var entry = currentValues[feature.properties[idProperty]];
             return {
                color: entry ? entry.color : '#cccccc',
                weight: 2,
                fillOpacity: 0.7
             };
          }

          var layer = L.geoJSON(boundaries, {
             style: styleFeature,
             onEachFeature: function (feature, lyr) {
                lyr.on('click', function () {
                   var id = feature.properties[idProperty];
                   var entry = currentValues[id];
                   var formatted = entry ? entry.value.toFixed(3) + '°C' : 'N/A';
                   lyr.bindPopup('<b>Region:</b> ' + id + '<br><b>ΔT Value:</b> ' + formatted).openPopup();
                });
             }
          }).addTo(map);

          function selection() {
             return {
                season: document.getElementById('season').value,
                time: document.getElementById('time').value
             };
          }

          // Fetch the value map for the current selection and restyle.
          // A response is applied only if the dropdowns still match the
          // selection it was computed for, so the latest choice wins.
          function applySelection() {
             var sel = selection();
             fetch('/api/values?season=' + sel.season + '&time=' + sel.time)
                .then(function (resp) { return resp.json(); })
                .then(function (body) {
                   var now = selection();
                   if (body.selection.season !== now.season || body.selection.time !== now.time) {
                      return;
                   }
                   currentValues = body.values;
                   layer.setStyle(styleFeature);
                });
          }

          document.getElementById('season').addEventListener('change', applySelection);
          document.getElementById('time').addEventListener('change', applySelection);
          applySelection();

          var legend = L.control({ position: 'bottomleft' });
          legend.onAdd = function () {
             var div = L.DomUtil.create('div', 'map-legend');
             div.innerHTML = '<b>Temp. Anomalies (°C)</b><br>';
             legendGrades.forEach(function (g) {
                div.innerHTML += '<i style="background:' + g.color + ';"></i> ' + g.label + '<br>';
             });
             return div;
          };
          legend.addTo(map);

          // Tabs
          document.querySelectorAll('.tab').forEach(function (tab) {
             tab.addEventListener('click', function () {
                document.querySelectorAll('.tab').forEach(function (t) { t.classList.remove('active'); });
                document.querySelectorAll('.panel').forEach(function (p) { p.classList.remove('active'); });
                tab.classList.add('active');
                document.getElementById(tab.dataset.panel).classList.add('active');
                map.invalidateSize();
             });
          });

          // Scatter view
          var scatterChart = null;
          function drawScatter() {
             var country = document.getElementById('country').value;
             if (!country) { return; }
             fetch('/api/country/' + encodeURIComponent(country))
                .then(function (resp) { return resp.json(); })
                .then(function (body) {
                   var points = body.points.map(function (p) {
                      return { x: p.day, y: p.night, season: p.season };
                   });
                   if (scatterChart) { scatterChart.destroy(); }
                   scatterChart = new Chart(document.getElementById('scatter-canvas'), {
                      type: 'scatter',
                      data: {
                         datasets: [{
                            label: 'ΔT: Day vs Night (' + country + ')',
                            data: points,
                            backgroundColor: 'darkorange',
                            pointRadius: 7
                         }]
                      },
                      options: {
                         scales: {
                            x: { title: { display: true, text: 'ΔT (Day) °C' } },
                            y: { title: { display: true, text: 'ΔT (Night) °C' } }
                         },
                         plugins: {
                            tooltip: {
                               callbacks: {
                                  label: function (ctx) {
                                     var p = ctx.raw;
                                     return p.season + ': day ' + p.x.toFixed(3) + ', night ' + p.y.toFixed(3);
                                  }
                               }
                            }
                         }
                      }
                   });
                });
          }
          document.getElementById('country').addEventListener('change', drawScatter);
          drawScatter();

          // About modal, shown once on load
          var modal = document.getElementById('about-modal');
          modal.style.display = 'flex';
          document.getElementById('modal-close').addEventListener('click', function () {
             modal.style.display = 'none';
          });
          document.getElementById('info-icon').addEventListener('click', function () {
             modal.style.display = 'flex';
          });
       </script>
    </body>
    </html>
    `))
