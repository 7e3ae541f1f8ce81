package webui

// indexHTML is the single-page form surface. Any input change re-submits
// the uploaded file with the current parameters and swaps the plot; errors
// from the pipeline are shown in place of the plot.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Treadmill threshold analyzer</title>
<style>
  body { font-family: sans-serif; margin: 2rem; max-width: 1000px; }
  fieldset { border: 1px solid #ccc; margin-bottom: 1rem; }
  label { display: inline-block; margin: 0.3rem 1rem 0.3rem 0; }
  input[type=number] { width: 5rem; }
  #message { color: #b00020; margin: 1rem 0; white-space: pre-wrap; }
  #plot img { max-width: 100%; border: 1px solid #ddd; }
</style>
</head>
<body>
<h1>Treadmill threshold analyzer</h1>
<p>Upload a treadmill ramp-test FIT file. Speeds are reconstructed from the
step protocol below unless you switch to device speed. The plot shows heart
rate against speed with the fitted deflection point.</p>

<form id="params">
  <fieldset>
    <legend>Activity file</legend>
    <input type="file" name="file" id="file" accept=".fit">
  </fieldset>
  <fieldset>
    <legend>Trim window (minutes)</legend>
    <label>Start <input type="number" name="start_minutes" value="0" step="0.5" min="0"></label>
    <label>End <input type="number" name="end_minutes" value="1000" step="0.5" min="0"></label>
  </fieldset>
  <fieldset>
    <legend>Step protocol</legend>
    <label>Start speed (km/h) <input type="number" name="speed_min" value="6" step="0.5"></label>
    <label>Speed increment (km/h) <input type="number" name="speed_step" value="1" step="0.5"></label>
    <label>Step duration (min) <input type="number" name="time_step" value="1.5" step="0.25"></label>
    <label><input type="checkbox" name="use_device_speed"> Use device speed</label>
  </fieldset>
  <fieldset>
    <legend>Plot</legend>
    <label><input type="checkbox" name="all_data"> Fit on every sample (no per-step averaging)</label>
    <label>Text size <input type="range" name="text_size" min="1" max="10" value="5"></label>
    <label>Title <input type="text" name="title" value=""></label>
  </fieldset>
</form>

<div id="message"></div>
<div id="plot"></div>

<script>
const form = document.getElementById('params');
const message = document.getElementById('message');
const plot = document.getElementById('plot');

async function recompute() {
  const file = document.getElementById('file').files[0];
  if (!file) { return; }
  const data = new FormData(form);
  data.set('file', file);
  data.set('use_device_speed', form.use_device_speed.checked ? '1' : '0');
  data.set('all_data', form.all_data.checked ? '1' : '0');
  try {
    const res = await fetch('/analyze', { method: 'POST', body: data });
    if (!res.ok) {
      const body = await res.json();
      message.textContent = body.error || 'analysis failed';
      plot.innerHTML = '';
      return;
    }
    const blob = await res.blob();
    message.textContent = '';
    plot.innerHTML = '';
    const img = document.createElement('img');
    img.src = URL.createObjectURL(blob);
    plot.appendChild(img);
  } catch (err) {
    message.textContent = 'request failed: ' + err;
    plot.innerHTML = '';
  }
}

form.addEventListener('change', recompute);
form.addEventListener('input', recompute);
</script>
</body>
</html>
`
