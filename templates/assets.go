package templates

const pageStyle = `
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6f8;color:#1f2937}
header.app{background:#1e3a5f;color:#fff;padding:1rem 1.5rem;display:flex;justify-content:space-between;align-items:center}
header.app h1{font-size:1.25rem;margin:0}
header.app .context{font-size:.85rem;opacity:.85}
main{padding:1.5rem;max-width:1400px;margin:0 auto}
.filters{display:flex;gap:1rem;background:#fff;padding:1rem;border-radius:8px;margin-bottom:1rem}
.filters label{display:flex;flex-direction:column;font-size:.8rem;gap:.25rem;flex:1}
details.section{background:#fff;border:1px solid #d1d5db;border-radius:8px;margin-bottom:.75rem}
details.section>summary{display:flex;justify-content:space-between;align-items:center;padding:.75rem 1rem;cursor:pointer}
details.section .body{padding:.75rem 1rem}
.badge{padding:.1rem .5rem;border-radius:4px;font-size:.75rem;font-weight:600;background:#e5e7eb}
.figures{display:flex;gap:1rem;text-align:right}
.figures .label{font-size:.7rem;color:#6b7280}
.figures .budget{color:#2563eb}
table.materials{width:100%;border-collapse:collapse;font-size:.85rem}
table.materials th,table.materials td{border-bottom:1px solid #e5e7eb;padding:.4rem;text-align:left;vertical-align:top}
.status-approved{background:#dcfce7;color:#166534}
.status-in_approval{background:#fef9c3;color:#854d0e}
.status-pending{background:#e5e7eb;color:#374151}
.comments{list-style:none;padding:0;margin:0;font-size:.75rem}
details.more-comments[open] .show-more{display:none}
details.more-comments:not([open]) .show-less{display:none}
.summary-bar{display:flex;justify-content:space-between;background:#fff;padding:1.5rem;border-radius:8px;margin-top:1.5rem}
.empty{text-align:center;padding:4rem 1rem;color:#6b7280}
#toast{position:fixed;bottom:1rem;right:1rem;padding:.75rem 1rem;border-radius:6px;color:#fff;display:none}
#toast.success{background:#16a34a}#toast.error{background:#dc2626}#toast.info{background:#2563eb}
`

const toastScript = `
function showToast(detail){var t=document.getElementById('toast');if(!t)return;t.textContent=detail.message;t.className=detail.type||'info';t.style.display='block';clearTimeout(t._h);t._h=setTimeout(function(){t.style.display='none'},3000)}
document.body.addEventListener('showToast',function(evt){showToast(evt.detail)});
(function(){var m=document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);if(!m)return;document.cookie='flash_toast=; Max-Age=0; path=/';try{showToast(JSON.parse(decodeURIComponent(m[1])))}catch(e){}})();
`
