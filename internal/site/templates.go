package site

// Asset is a generated file shared by every page.
type Asset struct {
	Content     string
	ContentType string
}

// Assets are the shared files by name, relative to the site root.
var Assets = map[string]Asset{
	"style.css": {Content: cssContent, ContentType: "text/css; charset=utf-8"},
	"script.js": {Content: jsContent, ContentType: "text/javascript; charset=utf-8"},
}

// pageTemplate is the Go html/template for every gallery page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  {{- if .BasePath}}
  <base href="{{.BasePath}}">
  {{- end}}
  <title>{{if .Title}}{{.Title}} | {{end}}{{.SiteTitle}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/prismjs@1.29.0/themes/prism.min.css">
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/prismjs@1.29.0/plugins/line-numbers/prism-line-numbers.min.css">
  <link rel="stylesheet" href="style.css?v={{.BuildID}}">
  <script>
    window.MathJax = {
      tex: {
        inlineMath: [['$', '$'], ['\\(', '\\)']],
        displayMath: [['$$', '$$'], ['\\[', '\\]']],
        processEscapes: true,
        processEnvironments: true
      },
      options: {
        skipHtmlTags: ['script', 'noscript', 'style', 'textarea', 'pre', 'code'],
        ignoreHtmlClass: 'tex2jax_ignore',
        processHtmlClass: 'tex2jax_process'
      }
    };
    window.CASEGALLERY = {{.Settings}};
  </script>
  <script id="MathJax-script" async src="https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"></script>
</head>
<body>
  <header class="page-header">
    <h1 class="site-title"><a href="{{.Home}}">{{.SiteTitle}}</a></h1>
  </header>
  {{- with .Carousel}}
  <section class="video-carousel">
    <div class="video-wrapper">
      <video id="main-video-player" controls preload="metadata" src="{{.Src}}"></video>
    </div>
    <div class="video-info">
      <p id="video-title" class="video-title">{{.Title}}</p>
      <div class="carousel-controls">
        <a id="prev-btn" class="carousel-btn" role="button"{{if .PrevDisabled}} aria-disabled="true"{{else}} href="{{.PrevHref}}"{{end}}>&lsaquo; Prev</a>
        <span id="video-counter" class="video-counter">{{.Counter}}</span>
        <a id="next-btn" class="carousel-btn" role="button"{{if .NextDisabled}} aria-disabled="true"{{else}} href="{{.NextHref}}"{{end}}>Next &rsaquo;</a>
      </div>
    </div>
  </section>
  {{- end}}
  {{- if .ShowCases}}
  <main class="cases">
    <nav class="tabs-container">
      {{.Tabs}}
    </nav>
    <div class="content-area">
      {{.Content}}
    </div>
  </main>
  {{- end}}
  {{- range .Fragments}}
  <template id="case-{{.ID}}">{{.HTML}}</template>
  {{- end}}
  <div id="imageViewer" class="image-viewer" hidden>
    <div class="image-viewer-overlay"></div>
    <div class="image-viewer-container">
      <button class="image-viewer-close" type="button" aria-label="Close">&times;</button>
      <div class="image-viewer-content">
        <img id="viewerImage" src="" alt="">
      </div>
      <p class="image-viewer-caption"></p>
      <div class="image-viewer-controls">
        <button type="button" data-viewer-action="in">+</button>
        <button type="button" data-viewer-action="out">-</button>
        <button type="button" data-viewer-action="reset">Reset</button>
      </div>
    </div>
  </div>
  <script src="https://cdn.jsdelivr.net/npm/prismjs@1.29.0/components/prism-core.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/prismjs@1.29.0/plugins/autoloader/prism-autoloader.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/prismjs@1.29.0/plugins/line-numbers/prism-line-numbers.min.js"></script>
  <script src="script.js?v={{.BuildID}}"></script>
</body>
</html>`

// cssContent is the stylesheet of the gallery.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-light: #e7f5ff;
  --thinking-bg: #fff9db;
  --thinking-border: #fcc419;
  --answer-bg: #ebfbee;
  --answer-border: #40c057;
  --error: #e03131;
  --code-bg: #f1f3f5;
  --content-max-width: 1100px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.1);
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg-secondary);
  line-height: 1.6;
}

/* ============ Header ============ */
.page-header {
  padding: 24px 32px;
  background: var(--bg);
  border-bottom: 1px solid var(--border);
}
.site-title { margin: 0; font-size: 1.6rem; }
.site-title a { color: inherit; text-decoration: none; }

/* ============ Video Carousel ============ */
.video-carousel {
  max-width: var(--content-max-width);
  margin: 24px auto;
  background: var(--bg);
  border-radius: 8px;
  box-shadow: var(--shadow);
  overflow: hidden;
}
.video-wrapper { background: #000; }
.video-wrapper video { display: block; width: 100%; max-height: 560px; }
.video-info { padding: 16px 20px; }
.video-title { margin: 0 0 12px; color: var(--text-secondary); }
.carousel-controls { display: flex; align-items: center; justify-content: center; gap: 16px; }
.carousel-btn {
  padding: 6px 16px;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--bg);
  color: var(--accent);
  text-decoration: none;
  cursor: pointer;
}
.carousel-btn[aria-disabled="true"] { color: var(--text-muted); cursor: not-allowed; opacity: 0.5; }
.video-counter { color: var(--text-muted); font-variant-numeric: tabular-nums; }

/* ============ Tabs ============ */
.cases {
  display: flex;
  gap: 24px;
  max-width: var(--content-max-width);
  margin: 24px auto;
  align-items: flex-start;
}
.tabs-container {
  flex: 0 0 260px;
  display: flex;
  flex-direction: column;
  gap: 8px;
}
.tab {
  display: block;
  padding: 12px 14px;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--bg);
  color: inherit;
  text-decoration: none;
  cursor: pointer;
}
.tab:hover { border-color: var(--accent); }
.tab.active { border-color: var(--accent); background: var(--accent-light); }
.tab-title { font-weight: 600; }
.tab-description { font-size: 0.85rem; color: var(--text-muted); }
.tab-description p { margin: 4px 0 0; }

/* ============ Content ============ */
.content-area {
  flex: 1;
  min-width: 0;
  max-height: calc(100vh - 48px);
  overflow-y: auto;
  background: var(--bg);
  border-radius: 8px;
  box-shadow: var(--shadow);
  padding: 24px;
}
.section { margin-bottom: 24px; }
.section-title { margin: 0 0 10px; font-size: 1.1rem; }
.question-box, .thinking-process, .answer-box {
  padding: 14px 16px;
  border-radius: 6px;
  overflow-x: auto;
}
.question-box { background: var(--bg-secondary); border-left: 4px solid var(--accent); }
.thinking-process { background: var(--thinking-bg); border-left: 4px solid var(--thinking-border); }
.answer-box { background: var(--answer-bg); border-left: 4px solid var(--answer-border); }
.thinking-round { margin-bottom: 24px; }
.thinking-round-title { margin: 0 0 10px; font-size: 1.1rem; }
.thinking-round .thinking-section { margin-bottom: 8px; }
.code-container pre { margin: 0; border-radius: 6px; }
.code-block { background: var(--code-bg); padding: 12px; border-radius: 6px; overflow-x: auto; }

/* ============ Images ============ */
.image-container { text-align: center; }
.zoomable-image { max-width: 100%; cursor: zoom-in; border-radius: 4px; }
.image-caption, .result-image-caption { font-size: 0.85rem; color: var(--text-muted); text-align: center; }
.result-images { display: grid; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: 16px; }

/* ============ LaTeX tables ============ */
.latex-table { border-collapse: collapse; margin: 12px auto; }
.latex-table th, .latex-table td { padding: 4px 10px; }
.latex-table.bordered th, .latex-table.bordered td { border: 1px solid var(--border); }
.latex-table th { background: var(--bg-secondary); }

.error { color: var(--error); font-weight: 600; }

/* ============ Image Viewer ============ */
.image-viewer {
  position: fixed;
  inset: 0;
  z-index: 1000;
  display: flex;
  align-items: center;
  justify-content: center;
}
.image-viewer[hidden] { display: none; }
.image-viewer-overlay { position: absolute; inset: 0; background: rgba(0,0,0,0.85); }
.image-viewer-container {
  position: relative;
  width: 90vw;
  height: 90vh;
  display: flex;
  flex-direction: column;
}
.image-viewer-content {
  flex: 1;
  overflow: hidden;
  display: flex;
  align-items: center;
  justify-content: center;
}
.image-viewer-content img { cursor: grab; transform-origin: center center; user-select: none; max-width: none; }
.image-viewer-close {
  position: absolute;
  top: 0;
  right: 0;
  z-index: 1;
  font-size: 2rem;
  color: #fff;
  background: none;
  border: none;
  cursor: pointer;
}
.image-viewer-caption { color: #fff; text-align: center; margin: 8px 0; }
.image-viewer-controls { display: flex; justify-content: center; gap: 8px; padding: 8px; }
.image-viewer-controls button {
  min-width: 44px;
  padding: 6px 12px;
  border: none;
  border-radius: 4px;
  background: rgba(255,255,255,0.9);
  cursor: pointer;
}

@media (max-width: 768px) {
  .cases { flex-direction: column; padding: 0 12px; }
  .tabs-container { flex: none; width: 100%; }
  .content-area { max-height: none; }
}
`

// jsContent drives tabs, typesetting, the image viewer, the video carousel
// and live reload.
const jsContent = `(function() {
  'use strict';

  var settings = window.CASEGALLERY || {};

  // ============ Tabs ============
  var contentArea = document.querySelector('.content-area');

  function typeset() {
    if (typeof Prism !== 'undefined') {
      Prism.highlightAll();
    }
    setTimeout(function() {
      if (window.MathJax && MathJax.typesetPromise) {
        MathJax.typesetPromise([contentArea]).catch(function(err) {
          console.error('MathJax typesetting failed:', err);
        });
      }
    }, settings.typesetDelay || 100);
  }

  function showCase(tab) {
    var tpl = document.getElementById('case-' + tab.dataset.caseId);
    if (!tpl || !contentArea) {
      return false;
    }
    document.querySelectorAll('.tab').forEach(function(t) { t.classList.remove('active'); });
    tab.classList.add('active');
    contentArea.innerHTML = '';
    contentArea.appendChild(tpl.content.cloneNode(true));
    contentArea.scrollTop = 0;
    typeset();
    return true;
  }

  document.querySelectorAll('.tab').forEach(function(tab) {
    tab.addEventListener('click', function(e) {
      if (showCase(tab)) {
        e.preventDefault();
      }
    });
  });

  if (contentArea) {
    typeset();
  }

  // ============ Image Viewer ============
  var v = settings.viewer || { minZoom: 0.1, maxZoom: 5, zoomStep: 1.2, resizeDebounce: 100 };
  var overlay = document.getElementById('imageViewer');
  var image = document.getElementById('viewerImage');
  var frame = overlay ? overlay.querySelector('.image-viewer-content') : null;
  var captionEl = overlay ? overlay.querySelector('.image-viewer-caption') : null;
  var zoom = 1, panX = 0, panY = 0;
  var dragging = false, startX = 0, startY = 0;
  var resizeTimer = null;

  function clamp(z) {
    return Math.min(Math.max(z, v.minZoom), v.maxZoom);
  }

  function apply() {
    image.style.transform = 'translate(' + panX + 'px, ' + panY + 'px) scale(' + zoom + ')';
  }

  function fit() {
    var iw = image.naturalWidth, ih = image.naturalHeight;
    var cw = frame.clientWidth, ch = frame.clientHeight;
    zoom = 1;
    if (iw > 0 && ih > 0 && cw > 0 && ch > 0) {
      zoom = Math.min(cw / iw, ch / ih, 1);
    }
    panX = 0;
    panY = 0;
    apply();
  }

  function isOpen() {
    return overlay && !overlay.hidden;
  }

  function openViewer(src, caption) {
    panX = 0;
    panY = 0;
    image.onload = fit;
    image.src = src;
    image.alt = caption || '';
    if (captionEl) {
      captionEl.textContent = caption || '';
    }
    overlay.hidden = false;
    document.body.style.overflow = 'hidden';
  }

  function closeViewer() {
    if (!isOpen()) {
      return;
    }
    overlay.hidden = true;
    dragging = false;
    document.body.style.overflow = '';
  }

  function zoomIn() { zoom = clamp(zoom * v.zoomStep); apply(); }
  function zoomOut() { zoom = clamp(zoom / v.zoomStep); apply(); }

  if (overlay && image && frame) {
    document.addEventListener('click', function(e) {
      var target = e.target.closest('[data-viewer-src]');
      if (target) {
        openViewer(target.dataset.viewerSrc, target.dataset.viewerCaption);
      }
    });
    overlay.querySelector('.image-viewer-overlay').addEventListener('click', closeViewer);
    overlay.querySelector('.image-viewer-close').addEventListener('click', closeViewer);
    overlay.querySelectorAll('[data-viewer-action]').forEach(function(btn) {
      btn.addEventListener('click', function() {
        switch (btn.dataset.viewerAction) {
          case 'in': zoomIn(); break;
          case 'out': zoomOut(); break;
          case 'reset': fit(); break;
        }
      });
    });
    frame.addEventListener('wheel', function(e) {
      e.preventDefault();
      if (e.deltaY < 0) { zoomIn(); } else { zoomOut(); }
    }, { passive: false });
    image.addEventListener('mousedown', function(e) {
      e.preventDefault();
      dragging = true;
      startX = e.clientX - panX;
      startY = e.clientY - panY;
      image.style.cursor = 'grabbing';
    });
    document.addEventListener('mousemove', function(e) {
      if (!dragging) { return; }
      panX = e.clientX - startX;
      panY = e.clientY - startY;
      apply();
    });
    document.addEventListener('mouseup', function() {
      dragging = false;
      image.style.cursor = 'grab';
    });
    document.addEventListener('keydown', function(e) {
      if (e.key === 'Escape') { closeViewer(); }
    });
    window.addEventListener('resize', function() {
      if (!isOpen()) { return; }
      clearTimeout(resizeTimer);
      resizeTimer = setTimeout(fit, v.resizeDebounce);
    });
  }

  // ============ Video Carousel ============
  var videos = settings.videos || [];
  var player = document.getElementById('main-video-player');
  var prevBtn = document.getElementById('prev-btn');
  var nextBtn = document.getElementById('next-btn');
  var current = settings.videoStart || 0;

  function setDisabled(btn, disabled) {
    if (disabled) {
      btn.setAttribute('aria-disabled', 'true');
    } else {
      btn.removeAttribute('aria-disabled');
    }
  }

  function updateCarousel() {
    var video = videos[current];
    player.src = video.src;
    document.getElementById('video-title').textContent = video.title;
    document.getElementById('video-counter').textContent = (current + 1) + ' / ' + videos.length;
    setDisabled(prevBtn, current === 0);
    setDisabled(nextBtn, current === videos.length - 1);
    player.load();
  }

  if (player && prevBtn && nextBtn && videos.length > 0) {
    prevBtn.addEventListener('click', function(e) {
      e.preventDefault();
      if (current > 0) { current--; updateCarousel(); }
    });
    nextBtn.addEventListener('click', function(e) {
      e.preventDefault();
      if (current < videos.length - 1) { current++; updateCarousel(); }
    });
  }

  // ============ Live Reload ============
  if (settings.liveReload && 'WebSocket' in window) {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(proto + location.host + settings.liveReload);
    ws.onmessage = function(e) {
      if (e.data === 'reload') { location.reload(); }
    };
  }
})();
`
