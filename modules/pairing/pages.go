package pairing

// 모바일 촬영/업로드 폼 (%s = sessionId)
const uploadPage = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>사진 업로드</title>
<style>
body { font-family: sans-serif; margin: 0; padding: 24px; background: #111; color: #eee; text-align: center; }
h1 { font-size: 1.2rem; }
.frame { margin-top: 32px; }
input[type=file] { display: none; }
label, button { display: inline-block; padding: 14px 28px; border-radius: 8px; background: #e94f37; color: #fff; border: none; font-size: 1rem; }
button:disabled { background: #555; }
#preview { max-width: 100%%; margin-top: 16px; border-radius: 8px; }
</style>
</head>
<body>
<h1>📷 휴대폰으로 사진 찍기</h1>
<p>촬영한 사진이 전시 화면으로 전송됩니다.</p>
<form class="frame" method="POST" action="/api/mobile-upload/%s" enctype="multipart/form-data">
  <label for="photo">사진 촬영</label>
  <input id="photo" type="file" name="photo" accept="image/*" capture="environment" required>
  <img id="preview" hidden>
  <div style="margin-top:24px">
    <button type="submit" id="send" disabled>업로드</button>
  </div>
</form>
<script>
const input = document.getElementById('photo');
const preview = document.getElementById('preview');
const send = document.getElementById('send');
input.addEventListener('change', () => {
  if (!input.files.length) return;
  preview.src = URL.createObjectURL(input.files[0]);
  preview.hidden = false;
  send.disabled = false;
});
</script>
</body>
</html>`

// 업로드 완료 확인 페이지
const confirmPage = `<!DOCTYPE html>
<html lang="ko">
<head><meta charset="utf-8"><title>업로드 완료</title></head>
<body style="font-family:sans-serif;text-align:center;padding:48px;background:#111;color:#eee">
<h1>✅ 업로드 완료!</h1>
<p>이제 전시 화면으로 돌아가세요.</p>
<script>alert('사진이 전송되었습니다. 전시 화면을 확인해주세요!');</script>
</body>
</html>`

// 세션 없음 페이지
const notFoundPage = `<!DOCTYPE html>
<html lang="ko">
<head><meta charset="utf-8"><title>세션 없음</title></head>
<body style="font-family:sans-serif;text-align:center;padding:48px;background:#111;color:#eee">
<h1>❌ 유효하지 않은 세션입니다</h1>
<p>전시 화면에서 QR 코드를 다시 스캔해주세요.</p>
</body>
</html>`

// 업로드 오류 페이지 (%s = 메시지)
const errorPage = `<!DOCTYPE html>
<html lang="ko">
<head><meta charset="utf-8"><title>업로드 실패</title></head>
<body style="font-family:sans-serif;text-align:center;padding:48px;background:#111;color:#eee">
<h1>⚠️ 업로드 실패</h1>
<p>%s</p>
<script>history.back && setTimeout(() => history.back(), 2500);</script>
</body>
</html>`
