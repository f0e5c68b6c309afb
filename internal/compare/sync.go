package compare

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// SyncScript returns the client logic for a comparison grid: the copy
// action and accordion mirroring between columns. Served once per grid.
func SyncScript() g.Node {
	return h.Script(g.Raw(syncScripts))
}

const syncScripts = `
function sfmCopy(url, path, target) {
  var grid = document.querySelector('.sfm-compare');
  if (!grid) return;
  var data = new URLSearchParams();
  data.set('path', path);
  data.set('target', target);
  grid.querySelectorAll('input[name], select[name], textarea[name]').forEach(function (el) {
    if (el.type === 'checkbox' && !el.checked) return;
    if (el.tagName === 'SELECT' && el.multiple) {
      Array.prototype.forEach.call(el.selectedOptions, function (opt) {
        data.append(el.name, opt.value);
      });
      return;
    }
    data.append(el.name, el.value);
  });
  fetch(url, {
    method: 'POST',
    headers: { 'Content-Type': 'application/x-www-form-urlencoded' },
    body: data.toString()
  }).then(function (resp) {
    return resp.text().then(function (html) {
      if (!resp.ok) { sfmShowError(grid.id, html); return; }
      var tpl = document.createElement('template');
      tpl.innerHTML = html.trim();
      var next = tpl.content.firstElementChild;
      if (!next || !next.id) return;
      var prev = document.getElementById(next.id);
      if (prev) prev.replaceWith(next);
    });
  }).catch(function (err) {
    console.error('copy failed', err);
  });
}

var sfmMirroring = false;

document.addEventListener('toggle', function (e) {
  if (sfmMirroring) return;
  var details = e.target;
  if (!details || details.tagName !== 'DETAILS') return;
  var container = details.closest('[data-field-container]');
  var column = details.closest('.sfm-compare-column');
  if (!container || !column) return;
  var grid = column.closest('.sfm-compare');
  if (!grid) return;
  var path = container.getAttribute('data-field-container');
  grid.querySelectorAll('.sfm-compare-column').forEach(function (other) {
    if (other === column) return;
    var twin = other.querySelector('[data-field-container="' + CSS.escape(path) + '"] > details');
    if (!twin || twin.open === details.open) return;
    sfmMirroring = true;
    twin.open = details.open;
    sfmMirroring = false;
  });
}, true);
`
