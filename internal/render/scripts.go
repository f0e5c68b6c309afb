package render

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Scripts returns the client-side glue for list mutation and pill widgets:
// fetch-based fragment swaps plus local DOM surgery. This is the entire
// browser-side requirement of the form layer; there is no client framework.
func Scripts() g.Node {
	return h.Script(g.Raw(formScripts))
}

const formScripts = `
function sfmListAdd(url, containerId) {
  fetch(url, {method: 'POST'}).then(function(resp) {
    if (!resp.ok) { console.warn('[sfm] add failed', resp.status); return resp.text().then(function(t){ sfmShowError(containerId, t); }); }
    return resp.text().then(function(html) {
      var container = document.getElementById(containerId);
      if (!container) return;
      container.insertAdjacentHTML('beforeend', html);
      var empty = container.parentElement.querySelector('.sfm-list-empty');
      if (empty) empty.remove();
    });
  });
}

function sfmListAddAfter(url, cardId) {
  fetch(url, {method: 'POST'}).then(function(resp) {
    if (!resp.ok) { console.warn('[sfm] insert failed', resp.status); return; }
    return resp.text().then(function(html) {
      var card = document.getElementById(cardId);
      if (card) card.insertAdjacentHTML('afterend', html);
    });
  });
}

function sfmListDelete(url, cardId, idx) {
  if (!window.confirm('Are you sure you want to delete this item?')) return;
  fetch(url + '?idx=' + encodeURIComponent(idx), {method: 'DELETE'}).then(function(resp) {
    if (!resp.ok) { console.warn('[sfm] delete failed', resp.status); return; }
    var card = document.getElementById(cardId);
    if (card) card.remove();
  });
}

function sfmMoveItem(buttonElement, direction) {
  var item = buttonElement.closest('li');
  if (!item) return;
  var container = item.parentElement;
  if (!container) return;
  var sibling = direction === 'up' ? item.previousElementSibling : item.nextElementSibling;
  if (!sibling) return;
  if (direction === 'up') {
    container.insertBefore(item, sibling);
  } else {
    container.insertBefore(item, sibling.nextElementSibling);
  }
}

function sfmToggleList(containerId) {
  var container = document.getElementById(containerId);
  if (!container) return;
  var panels = container.querySelectorAll(':scope > li > details');
  if (!panels.length) return;
  var shouldOpen = false;
  panels.forEach(function(d) { if (!d.open) shouldOpen = true; });
  panels.forEach(function(d) { d.open = shouldOpen; });
}

function sfmRefresh(url, formName) {
  var wrapper = document.getElementById(formName + '-inputs-wrapper');
  var form = wrapper ? wrapper.closest('form') : null;
  var body = form ? new URLSearchParams(new FormData(form)) : '';
  fetch(url, {method: 'POST', body: body}).then(function(resp) {
    return resp.text().then(function(html) {
      var wrapper = document.getElementById(formName + '-inputs-wrapper');
      if (wrapper) wrapper.outerHTML = html;
    });
  });
}

function sfmReset(url, formName) {
  if (!window.confirm('Are you sure you want to reset the form to its initial values? Any unsaved changes will be lost.')) return;
  fetch(url, {method: 'POST'}).then(function(resp) {
    return resp.text().then(function(html) {
      var wrapper = document.getElementById(formName + '-inputs-wrapper');
      if (wrapper) wrapper.outerHTML = html;
    });
  });
}

function sfmRemovePill(buttonElement) {
  var pill = buttonElement.closest('.sfm-pill');
  if (!pill) return;
  var container = pill.closest('.sfm-pills');
  var value = pill.querySelector('input[type="hidden"]').value;
  pill.remove();
  if (container) sfmRestorePillOption(container, value);
}

function sfmRestorePillOption(container, value) {
  var select = container.querySelector('.sfm-pill-add');
  if (!select) return;
  var opt = document.createElement('option');
  opt.value = value;
  opt.textContent = value;
  select.appendChild(opt);
}

function sfmAddPill(selectElement, containerId) {
  var value = selectElement.value;
  if (!value) return;
  var container = document.getElementById(containerId);
  if (!container) return;
  var wireName = container.getAttribute('data-wire-name');
  var pill = document.createElement('span');
  pill.className = 'sfm-pill inline-flex items-center gap-1 rounded-full bg-gray-200 px-2 py-0.5 text-sm';
  var input = document.createElement('input');
  input.type = 'hidden';
  input.name = wireName;
  input.value = value;
  pill.appendChild(input);
  pill.appendChild(document.createTextNode(value));
  var btn = document.createElement('button');
  btn.type = 'button';
  btn.className = 'sfm-pill-remove text-gray-500 hover:text-red-600';
  btn.textContent = '×';
  btn.onclick = function() { sfmRemovePill(btn); return false; };
  pill.appendChild(btn);
  container.insertBefore(pill, selectElement);
  selectElement.querySelector('option[value="' + value + '"]').remove();
  selectElement.value = '';
}

function sfmShowError(containerId, html) {
  var container = document.getElementById(containerId);
  if (container && html) container.insertAdjacentHTML('beforebegin', html);
}
`
